package rendicion

import (
    "bytes"
    "errors"
    "image"
    "image/png"
    "testing"

    "rendicion/internal/firma"
)

func pngDePrueba(t *testing.T) []byte {
    t.Helper()
    var buf bytes.Buffer
    if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))); err != nil {
        t.Fatalf("png de prueba: %v", err)
    }
    return buf.Bytes()
}

func rendicionCompleta(t *testing.T) *Rendicion {
    t.Helper()
    r := NewRendicion()
    r.ActualizarCampos(Campos{
        FechaInicio: "2025-01-01",
        FechaFin:    "2025-01-30",
        LugarFirma:  "Huaral, Chancay",
        GastoFijo:   GastoFijo{Concepto: "Alquiler de cuarto"},
        GastosMovilidad: []GastoMovilidad{
            {Fecha: "2025-01-10", RutaDel: "Huaral", RutaAl: "Chancay", Monto: 15.00},
        },
    })
    r.Firma = firma.Dibujar(pngDePrueba(t))
    return r
}

func TestTotalSoloFijo(t *testing.T) {
    r := NewRendicion()
    r.GastoFijo.Monto = 120.50
    if got := r.CalcularTotal(); got != 120.50 {
        t.Fatalf("total = %v, se esperaba 120.50", got)
    }
}

func TestTotalSumaYRedondea(t *testing.T) {
    r := NewRendicion()
    r.GastoFijo.Monto = 100.10
    r.GastosMovilidad[0].Monto = 15.204
    r.AddMovilidad()
    r.GastosMovilidad[1].Monto = 4.90
    r.OtrosGastos[0].Monto = 9.999
    if got := r.CalcularTotal(); got != 130.20 {
        t.Fatalf("total = %v, se esperaba 130.20", got)
    }
}

func TestRemoveMovilidadCorreFilas(t *testing.T) {
    r := NewRendicion()
    r.GastosMovilidad[0].Monto = 10
    r.AddMovilidad()
    r.GastosMovilidad[1].Monto = 20
    r.AddMovilidad()
    r.GastosMovilidad[2].Monto = 30
    if r.Total != 60 {
        t.Fatalf("total previo = %v", r.Total)
    }

    if err := r.RemoveMovilidad(1); err != nil {
        t.Fatalf("remove: %v", err)
    }
    if len(r.GastosMovilidad) != 2 {
        t.Fatalf("quedaron %d filas", len(r.GastosMovilidad))
    }
    if r.GastosMovilidad[0].Monto != 10 || r.GastosMovilidad[1].Monto != 30 {
        t.Fatalf("las filas no se corrieron: %+v", r.GastosMovilidad)
    }
    if r.Total != 40 {
        t.Fatalf("total tras remove = %v, se esperaba 40", r.Total)
    }
}

func TestRemoveIndiceInvalido(t *testing.T) {
    r := NewRendicion()
    if err := r.RemoveMovilidad(5); !errors.Is(err, ErrIndiceInvalido) {
        t.Fatalf("se esperaba ErrIndiceInvalido, vino %v", err)
    }
    if err := r.RemoveOtros(-1); !errors.Is(err, ErrIndiceInvalido) {
        t.Fatalf("se esperaba ErrIndiceInvalido, vino %v", err)
    }
}

func TestActualizarCamposPreservaEvidencia(t *testing.T) {
    r := NewRendicion()
    foto := pngDePrueba(t)
    if err := r.AttachEvidencia(0, foto, "boleta.png"); err != nil {
        t.Fatalf("attach: %v", err)
    }
    r.ActualizarCampos(Campos{
        FechaInicio: "2025-01-01",
        FechaFin:    "2025-01-30",
        LugarFirma:  "Huaral",
        GastosMovilidad: []GastoMovilidad{
            {Fecha: "2025-01-10", RutaDel: "Huaral", RutaAl: "Chancay", Monto: 15},
        },
    })
    if len(r.GastosMovilidad[0].Evidencia) == 0 || r.GastosMovilidad[0].NombreArchivo != "boleta.png" {
        t.Fatal("actualizar campos no debe tocar la evidencia adjunta")
    }
    if r.GastosMovilidad[0].Monto != 15 {
        t.Fatalf("monto no actualizado: %v", r.GastosMovilidad[0].Monto)
    }
}

func TestValidarRendicionCompleta(t *testing.T) {
    r := rendicionCompleta(t)
    if err := r.Validar(); err != nil {
        t.Fatalf("rendición completa rechazada: %v", err)
    }
    if r.Total != 15.00 {
        t.Fatalf("total = %v, se esperaba 15.00", r.Total)
    }
}

func TestValidarSinMovilidadConMonto(t *testing.T) {
    r := rendicionCompleta(t)
    r.GastosMovilidad[0].Monto = 0
    r.CalcularTotal()
    if err := r.Validar(); !errors.Is(err, ErrValidacion) {
        t.Fatalf("se esperaba ErrValidacion, vino %v", err)
    }
}

func TestValidarSinFirma(t *testing.T) {
    r := rendicionCompleta(t)
    r.Firma = firma.Firma{}
    if err := r.Validar(); !errors.Is(err, ErrValidacion) {
        t.Fatalf("se esperaba ErrValidacion, vino %v", err)
    }
}

func TestValidarCampoRequeridoVacio(t *testing.T) {
    casos := []func(*Rendicion){
        func(r *Rendicion) { r.FechaInicio = "" },
        func(r *Rendicion) { r.FechaFin = "" },
        func(r *Rendicion) { r.LugarFirma = "" },
        func(r *Rendicion) { r.GastosMovilidad[0].RutaDel = "" },
        func(r *Rendicion) { r.GastosMovilidad[0].Fecha = "" },
    }
    for i, romper := range casos {
        r := rendicionCompleta(t)
        romper(r)
        if err := r.Validar(); !errors.Is(err, ErrValidacion) {
            t.Fatalf("caso %d: se esperaba ErrValidacion, vino %v", i, err)
        }
    }
}

func TestAttachEvidenciaRechazos(t *testing.T) {
    r := NewRendicion()

    if err := r.AttachEvidencia(3, pngDePrueba(t), "x.png"); !errors.Is(err, ErrIndiceInvalido) {
        t.Fatalf("índice: %v", err)
    }

    if err := r.AttachEvidencia(0, []byte("un txt cualquiera, nada de imagen"), "x.txt"); !errors.Is(err, ErrTipoNoSoportado) {
        t.Fatalf("tipo: %v", err)
    }
    if r.GastosMovilidad[0].Evidencia != nil {
        t.Fatal("el rechazo por tipo no debe tocar la fila")
    }

    grande := make([]byte, MaxEvidenciaBytes+1)
    copy(grande, pngDePrueba(t))
    if err := r.AttachEvidencia(0, grande, "grande.png"); !errors.Is(err, ErrArchivoGrande) {
        t.Fatalf("tamaño: %v", err)
    }
    if r.GastosMovilidad[0].Evidencia != nil {
        t.Fatal("el rechazo por tamaño no debe tocar la fila")
    }
}

func TestAttachEvidenciaPisaLaAnterior(t *testing.T) {
    r := NewRendicion()
    if err := r.AttachEvidencia(0, pngDePrueba(t), "primera.png"); err != nil {
        t.Fatalf("attach 1: %v", err)
    }
    if err := r.AttachEvidencia(0, pngDePrueba(t), "segunda.png"); err != nil {
        t.Fatalf("attach 2: %v", err)
    }
    if r.GastosMovilidad[0].NombreArchivo != "segunda.png" {
        t.Fatalf("nombre = %q", r.GastosMovilidad[0].NombreArchivo)
    }
    if err := r.RemoveEvidencia(0); err != nil {
        t.Fatalf("remove evidencia: %v", err)
    }
    if r.GastosMovilidad[0].Evidencia != nil || r.GastosMovilidad[0].NombreArchivo != "" {
        t.Fatal("remove evidencia debe vaciar la fila")
    }
}

func TestConEvidenciaConservaOrden(t *testing.T) {
    r := NewRendicion()
    r.AddMovilidad()
    r.AddMovilidad()
    r.GastosMovilidad[0].Fecha = "a"
    r.GastosMovilidad[2].Fecha = "c"
    if err := r.AttachEvidencia(0, pngDePrueba(t), "a.png"); err != nil {
        t.Fatal(err)
    }
    if err := r.AttachEvidencia(2, pngDePrueba(t), "c.png"); err != nil {
        t.Fatal(err)
    }
    con := r.ConEvidencia()
    if len(con) != 2 || con[0].Fecha != "a" || con[1].Fecha != "c" {
        t.Fatalf("orden inesperado: %+v", con)
    }
}

func TestRegistryCreaYBorra(t *testing.T) {
    reg := NewRegistry()
    a := reg.Obtener("lsanchez")
    if a == nil || len(a.GastosMovilidad) != 1 {
        t.Fatal("obtener debe crear una rendición fresca")
    }
    if reg.Obtener("lsanchez") != a {
        t.Fatal("obtener debe devolver la misma rendición viva")
    }
    reg.Borrar("lsanchez")
    if reg.Obtener("lsanchez") == a {
        t.Fatal("tras borrar debe crearse una rendición nueva")
    }
}
