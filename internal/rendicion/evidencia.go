package rendicion

import (
    "errors"
    "strings"

    "github.com/gabriel-vasile/mimetype"
)

// la evidencia fotográfica pesa como máximo 5MB por fila
const MaxEvidenciaBytes = 5 * 1024 * 1024

var (
    ErrArchivoGrande   = errors.New("la imagen es demasiado grande, máximo 5MB permitido")
    ErrTipoNoSoportado = errors.New("solo se permiten archivos de imagen (JPEG, PNG, etc.)")
)

// AttachEvidencia adjunta la foto a la fila i. Un rechazo deja la fila tal
// cual estaba; un adjunto nuevo pisa la evidencia anterior de esa fila.
func (r *Rendicion) AttachEvidencia(i int, data []byte, nombre string) error {
    if i < 0 || i >= len(r.GastosMovilidad) { return ErrIndiceInvalido }
    if len(data) > MaxEvidenciaBytes {
        return ErrArchivoGrande
    }
    if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
        return ErrTipoNoSoportado
    }
    fila := &r.GastosMovilidad[i]
    fila.Evidencia = data
    fila.NombreArchivo = nombre
    return nil
}

func (r *Rendicion) RemoveEvidencia(i int) error {
    if i < 0 || i >= len(r.GastosMovilidad) { return ErrIndiceInvalido }
    fila := &r.GastosMovilidad[i]
    fila.Evidencia = nil
    fila.NombreArchivo = ""
    return nil
}

// ConEvidencia lista las filas de movilidad que llevan foto, en su orden.
func (r *Rendicion) ConEvidencia() []GastoMovilidad {
    out := []GastoMovilidad{}
    for _, g := range r.GastosMovilidad {
        if len(g.Evidencia) > 0 { out = append(out, g) }
    }
    return out
}
