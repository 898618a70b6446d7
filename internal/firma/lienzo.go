package firma

import (
    "bytes"

    "git.sr.ht/~sbinet/gg"
)

const (
    anchoLienzo = 400
    altoLienzo  = 150
)

// Lienzo es la superficie de dibujo a mano alzada. Cada segmento trazado
// reencoda la imagen, igual que el canvas original persistía en cada
// movimiento del puntero y no solo al soltar.
type Lienzo struct {
    dc           *gg.Context
    trazando     bool
    lastX, lastY float64
    tinta        bool
    imagen       []byte
}

func NewLienzo() *Lienzo {
    l := &Lienzo{}
    l.Limpiar()
    return l
}

// Limpiar vuelve al estado guía: borde negro y "Firme aquí" al centro.
func (l *Lienzo) Limpiar() {
    dc := gg.NewContext(anchoLienzo, altoLienzo)
    dc.SetRGB(1, 1, 1)
    dc.Clear()
    dc.SetRGB(0, 0, 0)
    dc.SetLineWidth(2)
    dc.DrawRectangle(1, 1, anchoLienzo-2, altoLienzo-2)
    dc.Stroke()
    dc.SetRGB(0.53, 0.53, 0.53)
    dc.DrawStringAnchored("Firme aquí", anchoLienzo/2, altoLienzo/2, 0.5, 0.5)
    dc.SetRGB(0, 0, 0)
    dc.SetLineCap(gg.LineCapRound)
    dc.SetLineJoin(gg.LineJoinRound)
    l.dc = dc
    l.trazando = false
    l.tinta = false
    l.imagen = nil
}

func (l *Lienzo) Iniciar(x, y float64) {
    if !l.tinta { l.borrarGuia() }
    l.trazando = true
    l.lastX, l.lastY = x, y
}

func (l *Lienzo) borrarGuia() {
    l.dc.SetRGB(1, 1, 1)
    l.dc.DrawRectangle(2, 2, anchoLienzo-4, altoLienzo-4)
    l.dc.Fill()
    l.dc.SetRGB(0, 0, 0)
}

// Trazar dibuja el segmento desde el último punto y devuelve la instantánea
// PNG actualizada. Fuera de un trazo no dibuja nada.
func (l *Lienzo) Trazar(x, y float64) []byte {
    if !l.trazando { return l.imagen }
    l.dc.SetLineWidth(2)
    l.dc.DrawLine(l.lastX, l.lastY, x, y)
    l.dc.Stroke()
    l.lastX, l.lastY = x, y
    l.tinta = true
    l.imagen = l.codificar()
    return l.imagen
}

func (l *Lienzo) Terminar() []byte {
    l.trazando = false
    if l.tinta && l.imagen == nil { l.imagen = l.codificar() }
    return l.imagen
}

func (l *Lienzo) Imagen() []byte { return l.imagen }

func (l *Lienzo) codificar() []byte {
    var buf bytes.Buffer
    if err := l.dc.EncodePNG(&buf); err != nil { return nil }
    return buf.Bytes()
}
