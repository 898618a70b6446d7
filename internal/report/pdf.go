package report

import (
    "bytes"
    "fmt"
    "hash/crc32"
    "image"
    _ "image/gif"
    _ "image/jpeg"
    _ "image/png"
    "strings"

    "codeberg.org/go-pdf/fpdf"
    "github.com/gabriel-vasile/mimetype"
    "go.uber.org/zap"

    "rendicion/internal/becados"
    "rendicion/internal/rendicion"
    "rendicion/pkg/utils"
)

// FondosEntregados es la subvención fija contra la que se rinde.
const FondosEntregados = 400.00

const (
    institucion  = "ASOCIACION CIVIL MINA MARIA TERESA"
    tituloLinea1 = "REPORTE DE RENDICION DE CUENTAS DE LA SUBVENCION DE"
    tituloLinea2 = "TRANSPORTE, ALOJAMIENTO Y ALIMENTACION"
)

// Saldo es lo que queda por devolver: nunca negativo.
func Saldo(total float64) float64 {
    s := FondosEntregados - total
    if s < 0 { return 0 }
    return s
}

func soles(v float64) string { return fmt.Sprintf("%.2f", v) }

// montoEnLetras sigue siendo el placeholder del original; solo la fracción de
// céntimos es real.
func montoEnLetras(v float64) string {
    s := soles(v)
    dec := s[strings.Index(s, ".")+1:]
    return fmt.Sprintf("Monto en letras simplificado y %s/100", dec)
}

// NombreArchivo arma Rendicion_Gastos_<Nombre_Con_Guiones>_<FechaFin>.pdf
func NombreArchivo(nombre, fechaFin string) string {
    return fmt.Sprintf("Rendicion_Gastos_%s_%s.pdf", strings.ReplaceAll(nombre, " ", "_"), fechaFin)
}

func incrustarImagen(pdf *fpdf.Fpdf, data []byte, x, y, w, h float64) error {
    mt := mimetype.Detect(data)
    var tipo string
    switch {
    case mt.Is("image/png"):
        tipo = "PNG"
    case mt.Is("image/jpeg"):
        tipo = "JPG"
    case mt.Is("image/gif"):
        tipo = "GIF"
    default:
        return fmt.Errorf("tipo de imagen no incrustable: %s", mt.String())
    }
    // validar antes de registrar: un registro fallido dejaría el documento
    // entero en estado de error
    if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
        return fmt.Errorf("imagen ilegible: %w", err)
    }
    nombre := fmt.Sprintf("img%08x", crc32.ChecksumIEEE(data))
    opts := fpdf.ImageOptions{ImageType: tipo}
    pdf.RegisterImageOptionsReader(nombre, opts, bytes.NewReader(data))
    pdf.ImageOptions(nombre, x, y, w, h, false, opts, 0, "")
    return nil
}

func textoCentrado(pdf *fpdf.Fpdf, tr func(string) string, y float64, s string) {
    t := tr(s)
    pdf.Text(105-pdf.GetStringWidth(t)/2, y, t)
}

// Generar produce el PDF de la rendición como función pura de la instantánea
// (identidad + formulario). Devuelve los bytes y el nombre de archivo.
func Generar(b becados.Becado, r *rendicion.Rendicion) ([]byte, string, error) {
    logger := utils.Logger()

    pdf := fpdf.New("P", "mm", "A4", "")
    pdf.SetAutoPageBreak(false, 0)
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.AddPage()
    y := 15.0

    periodo := fmt.Sprintf("Del %s al %s", r.FechaInicio, r.FechaFin)
    lugarFirma := r.LugarFirma
    if lugarFirma == "" { lugarFirma = "Huaral, Chancay" }

    totalMovilidad := r.TotalMovilidad()
    totalOtros := r.TotalOtros()
    total := r.CalcularTotal()

    // cabecera institucional
    pdf.SetFont("Helvetica", "B", 11)
    textoCentrado(pdf, tr, y, institucion)
    y += 6
    pdf.SetFont("Helvetica", "B", 8)
    textoCentrado(pdf, tr, y, tituloLinea1)
    y += 4
    textoCentrado(pdf, tr, y, tituloLinea2)
    y += 8

    // bloque etiquetado a offsets fijos
    pdf.SetFont("Helvetica", "B", 8)
    pdf.Text(15, y, "NOMBRE APELLIDO")
    y += 3
    pdf.Text(15, y, "DEL BECARIO:")
    pdf.SetFont("Helvetica", "", 8)
    pdf.Text(60, y, tr(b.Name))
    y += 5
    pdf.SetFont("Helvetica", "B", 8)
    pdf.Text(15, y, "DNI:")
    pdf.SetFont("Helvetica", "", 8)
    pdf.Text(60, y, b.DNI)
    y += 5
    pdf.SetFont("Helvetica", "B", 8)
    pdf.Text(15, y, "FECHA DE/ A:")
    pdf.SetFont("Helvetica", "", 8)
    pdf.Text(60, y, tr(periodo))
    y += 8

    // resumen: una fila por categoría con monto
    resumen := [][]Celda{}
    if totalMovilidad > 0 {
        resumen = append(resumen, []Celda{
            {Texto: "Del 01 al 30", Alinear: "C"},
            {},
            {Texto: "Movilidad para clases"},
            {Texto: "Declaración jurada", Alinear: "C", Tamano: 6.5},
            {Texto: soles(totalMovilidad), Alinear: "R"},
        })
    }
    if totalOtros > 0 {
        resumen = append(resumen, []Celda{
            {Texto: "Del 01 al 30", Alinear: "C"},
            {},
            {Texto: "Alimentación días clases"},
            {},
            {Texto: soles(totalOtros), Alinear: "R"},
        })
    }
    y = Tabla{
        X:      15,
        Anchos: []float64{20, 55, 55, 20, 30},
        Cabecera: []Celda{
            {Texto: "FECHA"}, {Texto: "NOMBRE DEL PROVEEDOR"}, {Texto: "CONCEPTO DEL GASTO"},
            {Texto: "N° BOLETA/TIKET", Tamano: 6.5}, {Texto: "SOLES"},
        },
        Filas: resumen,
        Pie: [][]Celda{
            {{Span: 3}, {Texto: "TOTAL GASTOS", Negrita: true}, {Texto: soles(total), Alinear: "R", Negrita: true}},
            {{Span: 3}, {Texto: "FONDOS ENTREGADOS", Negrita: true}, {Texto: soles(FondosEntregados), Alinear: "R", Negrita: true}},
            {{Span: 3}, {Texto: "SALDO A FAVOR O DEVOLVER FONDOS", Negrita: true, Tamano: 6.5}, {Texto: soles(Saldo(total)), Alinear: "R", Negrita: true}},
        },
    }.Dibujar(pdf, tr, y)
    y += 8

    // bloque de firma de la primera página
    pdf.SetFont("Helvetica", "", 8)
    pdf.Text(15, y, tr("Firma y Nombres y apellidos del becario"))
    y += 5
    if r.Firma.Presente() {
        if err := incrustarImagen(pdf, r.Firma.Imagen, 15, y, 50, 15); err != nil {
            logger.Warn("no se pudo incrustar la firma en la página 1", zap.Error(err))
        } else {
            y += 15
        }
    }
    pdf.Text(15, y, ".............................................")
    y += 3
    pdf.Text(15, y, tr(b.Name))

    // detalle de movilidad
    pdf.AddPage()
    y = 15
    pdf.SetFont("Helvetica", "B", 10)
    pdf.Text(15, y, "MOVILIDAD")
    y += 6

    filasMovilidad := [][]Celda{}
    for _, g := range r.GastosMovilidad {
        if g.Monto <= 0 { continue }
        filasMovilidad = append(filasMovilidad, []Celda{
            {Texto: g.Fecha},
            {Texto: fmt.Sprintf("%s %s", g.RutaDel, g.RutaAl)},
            {Texto: soles(g.Monto), Alinear: "R"},
        })
    }
    y = Tabla{
        X:        15,
        Anchos:   []float64{35, 115, 30},
        Cabecera: []Celda{{Texto: "FECHA"}, {Texto: "RUTA"}, {Texto: "SOLES"}},
        Filas:    filasMovilidad,
        Pie: [][]Celda{
            {{Texto: "TOTAL", Alinear: "R", Negrita: true, Span: 2}, {Texto: soles(totalMovilidad), Alinear: "R", Negrita: true}},
        },
    }.Dibujar(pdf, tr, y)
    y += 10

    // otros gastos solo si hay filas que cuenten
    filasOtros := [][]Celda{}
    for _, g := range r.OtrosGastos {
        if g.Monto <= 0 || g.Concepto == "" { continue }
        filasOtros = append(filasOtros, []Celda{
            {Texto: g.Fecha},
            {Texto: g.Concepto},
            {Texto: soles(g.Monto), Alinear: "R"},
        })
    }
    if totalOtros > 0 && len(filasOtros) > 0 {
        pdf.SetFont("Helvetica", "B", 10)
        pdf.Text(15, y, "OTRO")
        y += 6
        y = Tabla{
            X:        15,
            Anchos:   []float64{35, 115, 30},
            Cabecera: []Celda{{Texto: "FECHA"}, {Texto: "CONCEPTO"}, {Texto: "SOLES"}},
            Filas:    filasOtros,
            Pie: [][]Celda{
                {{Texto: "TOTAL", Alinear: "R", Negrita: true, Span: 2}, {Texto: soles(totalOtros), Alinear: "R", Negrita: true}},
            },
        }.Dibujar(pdf, tr, y)
        y += 10
    }

    // declaración jurada
    pdf.SetFont("Helvetica", "", 8)
    pdf.Text(15, y, tr("Al no haber obtenido comprobante de pago que sustente este egreso, se expide la presente"))
    y += 4
    pdf.SetFont("Helvetica", "B", 8)
    pdf.Text(15, y, tr(fmt.Sprintf("Declaración Jurada por el importe total de S/%s, (%s soles).", soles(total), montoEnLetras(total))))
    y += 10

    pdf.SetFont("Helvetica", "", 8)
    pdf.Text(15, y, tr(lugarFirma))
    y += 10

    textoCentrado(pdf, tr, y, "Firma y Nombres y apellidos del becario")
    y += 5
    if r.Firma.Presente() {
        if err := incrustarImagen(pdf, r.Firma.Imagen, (210-60)/2, y, 60, 20); err != nil {
            logger.Warn("no se pudo incrustar la firma en la página 2", zap.Error(err))
        } else {
            y += 20
        }
    }
    textoCentrado(pdf, tr, y, ".............................................")
    y += 4
    textoCentrado(pdf, tr, y, b.Name)
    y += 5
    textoCentrado(pdf, tr, y, fmt.Sprintf("DNI %s", b.DNI))

    dibujarEvidencias(pdf, tr, r, logger)

    var buf bytes.Buffer
    if err := pdf.Output(&buf); err != nil {
        return nil, "", err
    }
    return buf.Bytes(), NombreArchivo(b.Name, r.FechaFin), nil
}

// dibujarEvidencias agrega una página de evidencias cada dos fotos. Una foto
// ilegible deja un marcador y el render sigue.
func dibujarEvidencias(pdf *fpdf.Fpdf, tr func(string) string, r *rendicion.Rendicion, logger *zap.Logger) {
    conEvidencia := r.ConEvidencia()
    if len(conEvidencia) == 0 { return }

    pdf.AddPage()
    y := 15.0
    pdf.SetFont("Helvetica", "B", 12)
    textoCentrado(pdf, tr, y, "EVIDENCIAS FOTOGRÁFICAS DE MOVILIDAD")
    y += 10

    cuenta := 0
    const (
        imgX     = 15.0
        imgAncho = 180.0
        imgAlto  = 100.0
    )
    for _, gasto := range conEvidencia {
        if cuenta > 0 && cuenta%2 == 0 {
            pdf.AddPage()
            y = 20
        }

        pdf.SetFont("Helvetica", "B", 9)
        pdf.Text(imgX, y, fmt.Sprintf("Evidencia %d", cuenta+1))
        y += 5

        pdf.SetDrawColor(200, 200, 200)
        pdf.SetLineWidth(0.5)
        pdf.Rect(imgX-2, y-2, imgAncho+4, imgAlto+4, "D")

        if err := incrustarImagen(pdf, gasto.Evidencia, imgX, y, imgAncho, imgAlto); err != nil {
            logger.Warn("no se pudo incrustar la evidencia",
                zap.String("archivo", gasto.NombreArchivo), zap.Error(err))
            pdf.SetFont("Helvetica", "I", 8)
            pdf.Text(imgX, y+5, tr("Error al cargar evidencia"))
            y += 15
            cuenta++
            continue
        }
        y += imgAlto + 6

        pdf.SetDrawColor(0, 0, 0)
        pdf.SetLineWidth(0.1)
        y = Tabla{
            X:      imgX,
            Anchos: []float64{20, 70, 20, 70},
            Filas: [][]Celda{
                {
                    {Texto: "Fecha:", Negrita: true}, {Texto: gasto.Fecha},
                    {Texto: "Monto:", Negrita: true}, {Texto: fmt.Sprintf("S/ %s", soles(gasto.Monto))},
                },
                {
                    {Texto: "Ruta:", Negrita: true},
                    {Texto: fmt.Sprintf("%s - %s", gasto.RutaDel, gasto.RutaAl), Span: 3},
                },
            },
        }.Dibujar(pdf, tr, y)
        y += 15
        cuenta++
    }

    if len(conEvidencia) > 6 {
        y += 10
        pdf.SetFont("Helvetica", "I", 7)
        textoCentrado(pdf, tr, y, fmt.Sprintf("Total de evidencias adjuntas: %d", len(conEvidencia)))
    }
}
