package main

import (
    "errors"
    "io"
    "mime/multipart"
    "net/http"
    "strconv"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "rendicion/internal/becados"
    "rendicion/internal/firma"
    "rendicion/internal/rendicion"
    "rendicion/internal/report"
    "rendicion/pkg/utils"
)

type loginReq struct {
    Usuario string `json:"usuario" binding:"required"`
    Clave   string `json:"clave" binding:"required"`
}

func handleLogin(c *gin.Context) {
    var req loginReq
    if err := c.BindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
        return
    }
    b, err := roster.Autenticar(req.Usuario, req.Clave)
    switch {
    case errors.Is(err, becados.ErrContrasenaIncorrecta):
        c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
        return
    case errors.Is(err, becados.ErrUsuarioNoEncontrado):
        c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado, verifica tu usuario"})
        return
    case err != nil:
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    if err := sesiones.Save(c, b); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo guardar la sesión"})
        return
    }
    utils.Logger().Info("login", zap.String("usuario", b.Username))
    c.JSON(http.StatusOK, gin.H{"becado": b, "ruta": "/formulario"})
}

func handleLogout(c *gin.Context) {
    if b, ok := sesiones.Load(c); ok {
        registro.Borrar(b.Username)
    }
    sesiones.Clear(c)
    c.JSON(http.StatusOK, gin.H{"ruta": "/login"})
}

func verRendicion(c *gin.Context) {
    r := rendicionActual(c)
    c.JSON(http.StatusOK, gin.H{
        "becado":    becadoActual(c),
        "rendicion": r,
        "total":     r.Total,
        "firma":     r.Firma.Presente(),
    })
}

func actualizarCampos(c *gin.Context) {
    var campos rendicion.Campos
    if err := c.BindJSON(&campos); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
        return
    }
    total := rendicionActual(c).ActualizarCampos(campos)
    c.JSON(http.StatusOK, gin.H{"total": total})
}

func agregarMovilidad(c *gin.Context) {
    r := rendicionActual(c)
    r.AddMovilidad()
    c.JSON(http.StatusOK, gin.H{"filas": len(r.GastosMovilidad), "total": r.Total})
}

func quitarMovilidad(c *gin.Context) {
    r := rendicionActual(c)
    if err := r.RemoveMovilidad(indice(c)); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"filas": len(r.GastosMovilidad), "total": r.Total})
}

func agregarOtros(c *gin.Context) {
    r := rendicionActual(c)
    r.AddOtros()
    c.JSON(http.StatusOK, gin.H{"filas": len(r.OtrosGastos), "total": r.Total})
}

func quitarOtros(c *gin.Context) {
    r := rendicionActual(c)
    if err := r.RemoveOtros(indice(c)); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"filas": len(r.OtrosGastos), "total": r.Total})
}

func indice(c *gin.Context) int {
    i, err := strconv.Atoi(c.Param("indice"))
    if err != nil { return -1 }
    return i
}

func leerArchivo(c *gin.Context, campo string) ([]byte, *multipart.FileHeader, bool) {
    fh, err := c.FormFile(campo)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "falta el archivo"})
        return nil, nil, false
    }
    f, err := fh.Open()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo leer el archivo"})
        return nil, nil, false
    }
    defer f.Close()
    data, err := io.ReadAll(f)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo leer el archivo"})
        return nil, nil, false
    }
    return data, fh, true
}

func subirEvidencia(c *gin.Context) {
    data, fh, ok := leerArchivo(c, "archivo")
    if !ok { return }
    r := rendicionActual(c)
    err := r.AttachEvidencia(indice(c), data, fh.Filename)
    switch {
    case errors.Is(err, rendicion.ErrIndiceInvalido):
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    case errors.Is(err, rendicion.ErrArchivoGrande):
        c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
    case errors.Is(err, rendicion.ErrTipoNoSoportado):
        c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
    case err != nil:
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    default:
        c.JSON(http.StatusOK, gin.H{"archivo": fh.Filename})
    }
}

func quitarEvidencia(c *gin.Context) {
    if err := rendicionActual(c).RemoveEvidencia(indice(c)); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{})
}

type puntoReq struct {
    X float64 `json:"x"`
    Y float64 `json:"y"`
}

func firmaIniciar(c *gin.Context) {
    var p puntoReq
    if err := c.BindJSON(&p); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
        return
    }
    rendicionActual(c).Lienzo.Iniciar(p.X, p.Y)
    c.JSON(http.StatusOK, gin.H{})
}

func firmaTrazar(c *gin.Context) {
    var p puntoReq
    if err := c.BindJSON(&p); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
        return
    }
    r := rendicionActual(c)
    // cada segmento persiste la instantánea: el trazo dibujado pisa cualquier
    // imagen subida anterior
    if img := r.Lienzo.Trazar(p.X, p.Y); len(img) > 0 {
        r.Firma = firma.Dibujar(img)
    }
    c.JSON(http.StatusOK, gin.H{"firma": r.Firma.Presente()})
}

func firmaTerminar(c *gin.Context) {
    r := rendicionActual(c)
    if img := r.Lienzo.Terminar(); len(img) > 0 {
        r.Firma = firma.Dibujar(img)
    }
    c.JSON(http.StatusOK, gin.H{"firma": r.Firma.Presente()})
}

func firmaLimpiar(c *gin.Context) {
    r := rendicionActual(c)
    r.Lienzo.Limpiar()
    r.Firma = firma.Firma{}
    c.JSON(http.StatusOK, gin.H{"firma": false})
}

func firmaImagen(c *gin.Context) {
    data, fh, ok := leerArchivo(c, "archivo")
    if !ok { return }
    f, err := firma.Subir(data, fh.Filename)
    switch {
    case errors.Is(err, firma.ErrArchivoGrande):
        c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
        return
    case errors.Is(err, firma.ErrTipoNoSoportado):
        c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
        return
    case err != nil:
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    r := rendicionActual(c)
    // la imagen subida limpia el lienzo y pisa la firma dibujada
    r.Lienzo.Limpiar()
    r.Firma = f
    c.JSON(http.StatusOK, gin.H{"archivo": fh.Filename, "firma": true})
}

func generarPDF(c *gin.Context) {
    b := becadoActual(c)
    r := rendicionActual(c)
    if err := r.Validar(); err != nil {
        c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
        return
    }
    data, nombre, err := report.Generar(b, r)
    if err != nil {
        utils.Logger().Error("generación de PDF fallida", zap.String("usuario", b.Username), zap.Error(err))
        c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el PDF"})
        return
    }
    r.UltimoPDF = data
    r.NombrePDF = nombre
    utils.Logger().Info("pdf generado",
        zap.String("usuario", b.Username), zap.String("archivo", nombre), zap.Float64("total", r.Total))
    c.JSON(http.StatusOK, gin.H{
        "archivo": nombre,
        "total":   r.Total,
        "mensaje": "PDF generado exitosamente. Ahora puede subirlo al formulario oficial.",
    })
}

func descargarPDF(c *gin.Context) {
    r := rendicionActual(c)
    if len(r.UltimoPDF) == 0 {
        c.JSON(http.StatusNotFound, gin.H{"error": rendicion.ErrSinPDF.Error()})
        return
    }
    c.Header("Content-Disposition", `attachment; filename="`+r.NombrePDF+`"`)
    c.Data(http.StatusOK, "application/pdf", r.UltimoPDF)
}

func enviarFormulario(c *gin.Context) {
    r := rendicionActual(c)
    if len(r.UltimoPDF) == 0 {
        c.JSON(http.StatusConflict, gin.H{"error": rendicion.ErrSinPDF.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{
        "url":     formsURL,
        "mensaje": "Se abrirá el formulario oficial de Google Forms para que suba su archivo PDF.",
    })
}
