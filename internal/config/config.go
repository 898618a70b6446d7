package config

import (
    "os"

    "github.com/joho/godotenv"
)

// URL fija del formulario oficial donde el becado sube el PDF a mano.
const formsURLFija = "https://docs.google.com/forms/d/e/1FAIpQLSeoeQu-yPmEg2x8Q7dqdUWoOcz4R38pkDOQYUZA7vmOd1Ffiw/viewform?usp=pp_url"

// Cargar lee el .env si existe; todo es opcional.
func Cargar() { _ = godotenv.Load() }

func Port() string {
    if v := os.Getenv("PORT"); v != "" { return v }
    return "8080"
}

// Password devuelve el override de la contraseña compartida; vacío significa
// usar la fija del roster.
func Password() string { return os.Getenv("RENDICION_PASSWORD") }

func FormsURL() string {
    if v := os.Getenv("FORMS_URL"); v != "" { return v }
    return formsURLFija
}
