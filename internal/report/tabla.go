package report

import "codeberg.org/go-pdf/fpdf"

// Tabla dibuja cuadrículas al estilo del template institucional: celdas con
// borde negro fino, cabecera en negrita centrada y montos a la derecha. Es el
// reemplazo del autotable que usaba el original; fpdf no trae capa de tablas.

const altoFila = 6.0

type Celda struct {
    Texto   string
    Alinear string // "L", "C" o "R"
    Negrita bool
    Tamano  float64 // 0 = hereda el tamaño de la fila
    Span    int     // 0 o 1 = una columna
}

type Tabla struct {
    X        float64
    Anchos   []float64
    Cabecera []Celda
    Filas    [][]Celda
    Pie      [][]Celda
}

// Dibujar pinta la tabla desde y, devolviendo el cursor vertical final.
func (t Tabla) Dibujar(pdf *fpdf.Fpdf, tr func(string) string, y float64) float64 {
    pdf.SetDrawColor(0, 0, 0)
    pdf.SetLineWidth(0.1)

    if len(t.Cabecera) > 0 {
        y = t.fila(pdf, tr, t.Cabecera, y, true)
    }
    for _, f := range t.Filas {
        y = t.fila(pdf, tr, f, y, false)
    }
    for _, f := range t.Pie {
        y = t.fila(pdf, tr, f, y, false)
    }
    return y
}

func (t Tabla) fila(pdf *fpdf.Fpdf, tr func(string) string, celdas []Celda, y float64, cabecera bool) float64 {
    x := t.X
    col := 0
    for _, c := range celdas {
        span := c.Span
        if span < 1 { span = 1 }
        w := 0.0
        for k := 0; k < span && col+k < len(t.Anchos); k++ {
            w += t.Anchos[col+k]
        }
        col += span

        estilo := ""
        if c.Negrita || cabecera { estilo = "B" }
        tam := c.Tamano
        if tam == 0 { tam = 8 }
        pdf.SetFont("Helvetica", estilo, tam)

        alinear := c.Alinear
        if alinear == "" {
            alinear = "L"
            if cabecera { alinear = "C" }
        }

        pdf.SetXY(x, y)
        pdf.CellFormat(w, altoFila, tr(c.Texto), "1", 0, alinear, false, 0, "")
        x += w
    }
    return y + altoFila
}
