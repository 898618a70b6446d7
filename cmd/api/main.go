package main

import (
    "net/http"

    "github.com/gin-contrib/cors"
    "github.com/gin-gonic/gin"

    "rendicion/internal/becados"
    "rendicion/internal/config"
    "rendicion/internal/rendicion"
    "rendicion/internal/session"
    "rendicion/pkg/utils"
)

var (
    roster   *becados.Roster
    sesiones session.Store
    registro *rendicion.Registry
    formsURL string
)

func nuevoRouter() *gin.Engine {
    r := gin.Default()
    r.Use(cors.Default())

    r.Static("/static", "cmd/api/static")
    r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/login") })
    r.GET("/login", func(c *gin.Context) { c.File("cmd/api/static/login.html") })
    r.GET("/formulario", guardPagina, func(c *gin.Context) { c.File("cmd/api/static/formulario.html") })
    r.NoRoute(func(c *gin.Context) { c.Redirect(http.StatusFound, "/login") })

    api := r.Group("/api")
    api.POST("/login", handleLogin)
    api.POST("/logout", handleLogout)

    protegido := api.Group("/")
    protegido.Use(guardAPI)
    protegido.GET("/rendicion", verRendicion)
    protegido.PUT("/rendicion", actualizarCampos)
    protegido.POST("/rendicion/movilidad", agregarMovilidad)
    protegido.DELETE("/rendicion/movilidad/:indice", quitarMovilidad)
    protegido.POST("/rendicion/movilidad/:indice/evidencia", subirEvidencia)
    protegido.DELETE("/rendicion/movilidad/:indice/evidencia", quitarEvidencia)
    protegido.POST("/rendicion/otros", agregarOtros)
    protegido.DELETE("/rendicion/otros/:indice", quitarOtros)
    protegido.POST("/firma/iniciar", firmaIniciar)
    protegido.POST("/firma/trazar", firmaTrazar)
    protegido.POST("/firma/terminar", firmaTerminar)
    protegido.POST("/firma/limpiar", firmaLimpiar)
    protegido.POST("/firma/imagen", firmaImagen)
    protegido.POST("/rendicion/generar", generarPDF)
    protegido.GET("/rendicion/pdf", descargarPDF)
    protegido.POST("/rendicion/enviar", enviarFormulario)

    return r
}

// guardPagina protege la página del formulario: sin sesión se vuelve al login.
// Se evalúa en cada navegación, nunca se cachea.
func guardPagina(c *gin.Context) {
    if _, ok := sesiones.Load(c); !ok {
        c.Redirect(http.StatusFound, "/login")
        c.Abort()
        return
    }
    c.Next()
}

func guardAPI(c *gin.Context) {
    b, ok := sesiones.Load(c)
    if !ok {
        c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
        return
    }
    c.Set("becado", b)
    c.Next()
}

func becadoActual(c *gin.Context) becados.Becado {
    return c.MustGet("becado").(becados.Becado)
}

func rendicionActual(c *gin.Context) *rendicion.Rendicion {
    return registro.Obtener(becadoActual(c).Username)
}

func main() {
    config.Cargar()
    logger := utils.Logger()
    defer logger.Sync()

    roster = becados.Default(config.Password())
    sesiones = session.NewCookieStore()
    registro = rendicion.NewRegistry()
    formsURL = config.FormsURL()

    r := nuevoRouter()
    r.Run(":" + config.Port())
}
