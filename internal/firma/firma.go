package firma

import (
    "errors"
    "strings"

    "github.com/gabriel-vasile/mimetype"
)

// la imagen de firma subida pesa como máximo 2MB
const MaxImagenBytes = 2 * 1024 * 1024

var (
    ErrArchivoGrande   = errors.New("la imagen de firma es demasiado grande, máximo 2MB permitido")
    ErrTipoNoSoportado = errors.New("solo se permiten archivos de imagen (JPEG, PNG, etc.)")
)

type Origen int

const (
    Ninguna Origen = iota
    Dibujada
    Subida
)

// Firma es la variante etiquetada dibujada | subida | ausente. Fijar un origen
// descarta el otro, nunca conviven los dos.
type Firma struct {
    Origen Origen
    Imagen []byte
    Nombre string
}

func (f Firma) Presente() bool { return f.Origen != Ninguna && len(f.Imagen) > 0 }

func Dibujar(png []byte) Firma {
    if len(png) == 0 { return Firma{} }
    return Firma{Origen: Dibujada, Imagen: png}
}

// Subir valida tipo y tamaño del archivo; si pasa, la firma dibujada queda
// descartada por construcción.
func Subir(data []byte, nombre string) (Firma, error) {
    if len(data) > MaxImagenBytes {
        return Firma{}, ErrArchivoGrande
    }
    if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
        return Firma{}, ErrTipoNoSoportado
    }
    return Firma{Origen: Subida, Imagen: data, Nombre: nombre}, nil
}
