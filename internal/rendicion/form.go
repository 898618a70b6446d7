package rendicion

import (
    "errors"
    "fmt"
    "math"

    "github.com/go-playground/validator/v10"

    "rendicion/internal/firma"
)

var (
    ErrIndiceInvalido = errors.New("índice fuera de rango")
    ErrValidacion     = errors.New("rendición inválida")
    ErrSinPDF         = errors.New("primero debe generar el PDF antes de poder subirlo al formulario")
)

type GastoFijo struct {
    Proveedor string  `json:"proveedor"`
    Concepto  string  `json:"concepto"`
    Monto     float64 `json:"monto"`
}

type GastoMovilidad struct {
    Fecha         string  `json:"fecha"`
    RutaDel       string  `json:"rutaDel"`
    RutaAl        string  `json:"rutaAl"`
    Monto         float64 `json:"monto"`
    Evidencia     []byte  `json:"-"`
    NombreArchivo string  `json:"nombreArchivo,omitempty"`
}

type OtroGasto struct {
    Fecha    string  `json:"fecha"`
    Concepto string  `json:"concepto"`
    Monto    float64 `json:"monto"`
}

// Rendicion es el modelo vivo del formulario de un becado. El total se
// recalcula tras cada mutación; el contrato es llamar CalcularTotal después
// de tocar cualquier campo, que es lo que hacen todas las operaciones de acá.
type Rendicion struct {
    FechaInicio     string           `json:"fechaInicio"`
    FechaFin        string           `json:"fechaFin"`
    GastoFijo       GastoFijo        `json:"gastoFijo"`
    GastosMovilidad []GastoMovilidad `json:"gastosMovilidad"`
    OtrosGastos     []OtroGasto      `json:"otrosGastos"`
    LugarFirma      string           `json:"lugarFirma"`
    Firma           firma.Firma      `json:"-"`
    Lienzo          *firma.Lienzo    `json:"-"`
    Total           float64          `json:"total"`

    // el último PDF vive en memoria solo para la descarga y el envío manual
    UltimoPDF []byte `json:"-"`
    NombrePDF string `json:"-"`
}

func NewRendicion() *Rendicion {
    r := &Rendicion{
        GastoFijo:       GastoFijo{Concepto: "Alquiler de cuarto"},
        GastosMovilidad: []GastoMovilidad{{}},
        OtrosGastos:     []OtroGasto{{}},
        Lienzo:          firma.NewLienzo(),
    }
    r.CalcularTotal()
    return r
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (r *Rendicion) CalcularTotal() float64 {
    total := r.GastoFijo.Monto
    for _, g := range r.GastosMovilidad {
        total += g.Monto
    }
    for _, g := range r.OtrosGastos {
        total += g.Monto
    }
    r.Total = round2(total)
    return r.Total
}

func (r *Rendicion) TotalMovilidad() float64 {
    t := 0.0
    for _, g := range r.GastosMovilidad { t += g.Monto }
    return round2(t)
}

func (r *Rendicion) TotalOtros() float64 {
    t := 0.0
    for _, g := range r.OtrosGastos { t += g.Monto }
    return round2(t)
}

func (r *Rendicion) AddMovilidad() {
    r.GastosMovilidad = append(r.GastosMovilidad, GastoMovilidad{})
    r.CalcularTotal()
}

func (r *Rendicion) RemoveMovilidad(i int) error {
    if i < 0 || i >= len(r.GastosMovilidad) { return ErrIndiceInvalido }
    r.GastosMovilidad = append(r.GastosMovilidad[:i], r.GastosMovilidad[i+1:]...)
    r.CalcularTotal()
    return nil
}

func (r *Rendicion) AddOtros() {
    r.OtrosGastos = append(r.OtrosGastos, OtroGasto{})
    r.CalcularTotal()
}

func (r *Rendicion) RemoveOtros(i int) error {
    if i < 0 || i >= len(r.OtrosGastos) { return ErrIndiceInvalido }
    r.OtrosGastos = append(r.OtrosGastos[:i], r.OtrosGastos[i+1:]...)
    r.CalcularTotal()
    return nil
}

// Campos son los valores editables del formulario. Las listas solo traen
// escalares: la evidencia adjunta de cada fila se conserva y únicamente
// add/remove cambian el largo.
type Campos struct {
    FechaInicio     string           `json:"fechaInicio"`
    FechaFin        string           `json:"fechaFin"`
    LugarFirma      string           `json:"lugarFirma"`
    GastoFijo       GastoFijo        `json:"gastoFijo"`
    GastosMovilidad []GastoMovilidad `json:"gastosMovilidad"`
    OtrosGastos     []OtroGasto      `json:"otrosGastos"`
}

func (r *Rendicion) ActualizarCampos(c Campos) float64 {
    r.FechaInicio = c.FechaInicio
    r.FechaFin = c.FechaFin
    r.LugarFirma = c.LugarFirma
    r.GastoFijo = c.GastoFijo
    for i, g := range c.GastosMovilidad {
        if i >= len(r.GastosMovilidad) { break }
        fila := &r.GastosMovilidad[i]
        fila.Fecha, fila.RutaDel, fila.RutaAl, fila.Monto = g.Fecha, g.RutaDel, g.RutaAl, g.Monto
    }
    for i, g := range c.OtrosGastos {
        if i >= len(r.OtrosGastos) { break }
        r.OtrosGastos[i] = g
    }
    return r.CalcularTotal()
}

var validate = validator.New()

type camposRequeridos struct {
    FechaInicio string `validate:"required"`
    FechaFin    string `validate:"required"`
    LugarFirma  string `validate:"required"`
}

// Validar decide si la rendición puede generar el reporte. Primero exige al
// menos una movilidad con monto, como el formulario original, después los
// campos requeridos y por último la firma.
func (r *Rendicion) Validar() error {
    conMonto := false
    for _, g := range r.GastosMovilidad {
        if g.Monto > 0 { conMonto = true; break }
    }
    if !conMonto {
        return fmt.Errorf("%w: debe registrar al menos un gasto de movilidad con un monto mayor a S/ 0.00", ErrValidacion)
    }
    req := camposRequeridos{r.FechaInicio, r.FechaFin, r.LugarFirma}
    if err := validate.Struct(req); err != nil {
        return fmt.Errorf("%w: completa todos los campos requeridos", ErrValidacion)
    }
    for _, g := range r.GastosMovilidad {
        if g.Fecha == "" || g.RutaDel == "" || g.RutaAl == "" || g.Monto < 0.01 {
            return fmt.Errorf("%w: completa todos los campos requeridos y asegúrate de que los montos sean válidos", ErrValidacion)
        }
    }
    if !r.Firma.Presente() {
        return fmt.Errorf("%w: falta la firma del becado", ErrValidacion)
    }
    return nil
}
