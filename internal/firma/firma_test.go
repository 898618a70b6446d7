package firma

import (
    "bytes"
    "errors"
    "image"
    "image/png"
    "testing"
)

func pngDePrueba(t *testing.T, ancho, alto int) []byte {
    t.Helper()
    var buf bytes.Buffer
    if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, ancho, alto))); err != nil {
        t.Fatalf("png de prueba: %v", err)
    }
    return buf.Bytes()
}

func TestLienzoTrazoGeneraPNG(t *testing.T) {
    l := NewLienzo()
    if l.Imagen() != nil {
        t.Fatal("lienzo recién creado no debe tener imagen")
    }

    l.Iniciar(10, 10)
    img := l.Trazar(120, 80)
    if len(img) == 0 {
        t.Fatal("trazar debe persistir una instantánea por segmento")
    }
    if fin := l.Terminar(); len(fin) == 0 {
        t.Fatal("terminar debe conservar la imagen")
    }

    cfg, err := png.DecodeConfig(bytes.NewReader(l.Imagen()))
    if err != nil {
        t.Fatalf("la instantánea no es PNG: %v", err)
    }
    if cfg.Width != 400 || cfg.Height != 150 {
        t.Fatalf("dimensiones inesperadas %dx%d", cfg.Width, cfg.Height)
    }
}

func TestLienzoNoDibujaSinIniciar(t *testing.T) {
    l := NewLienzo()
    if img := l.Trazar(50, 50); img != nil {
        t.Fatal("trazar sin iniciar no debe dibujar")
    }
}

func TestLienzoLimpiarResetea(t *testing.T) {
    l := NewLienzo()
    l.Iniciar(5, 5)
    l.Trazar(100, 100)
    l.Terminar()
    l.Limpiar()
    if l.Imagen() != nil {
        t.Fatal("limpiar debe vaciar la imagen almacenada")
    }
    // y se puede volver a firmar después de limpiar
    l.Iniciar(20, 20)
    if img := l.Trazar(60, 40); len(img) == 0 {
        t.Fatal("el lienzo limpiado debe aceptar trazos nuevos")
    }
}

func TestSubirAceptaImagen(t *testing.T) {
    data := pngDePrueba(t, 80, 40)
    f, err := Subir(data, "firma.png")
    if err != nil {
        t.Fatalf("subir: %v", err)
    }
    if f.Origen != Subida || f.Nombre != "firma.png" || !f.Presente() {
        t.Fatalf("firma subida mal armada: %+v", f.Origen)
    }
}

func TestSubirRechazaTipo(t *testing.T) {
    _, err := Subir([]byte("esto es texto plano, no una imagen"), "nota.txt")
    if !errors.Is(err, ErrTipoNoSoportado) {
        t.Fatalf("se esperaba ErrTipoNoSoportado, vino %v", err)
    }
}

func TestSubirRechazaTamano(t *testing.T) {
    grande := make([]byte, MaxImagenBytes+1)
    copy(grande, pngDePrueba(t, 10, 10))
    _, err := Subir(grande, "gigante.png")
    if !errors.Is(err, ErrArchivoGrande) {
        t.Fatalf("se esperaba ErrArchivoGrande, vino %v", err)
    }
}

func TestDibujarVacioEsAusente(t *testing.T) {
    if f := Dibujar(nil); f.Presente() {
        t.Fatal("dibujar sin bytes debe quedar ausente")
    }
    if f := Dibujar(pngDePrueba(t, 10, 10)); f.Origen != Dibujada || !f.Presente() {
        t.Fatal("dibujar con bytes debe quedar presente")
    }
}
