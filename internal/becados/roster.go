package becados

import (
    "errors"
    "strings"
)

var (
    ErrContrasenaIncorrecta = errors.New("contraseña incorrecta")
    ErrUsuarioNoEncontrado  = errors.New("usuario no encontrado")
)

type Becado struct {
    Username string `json:"username"`
    Name     string `json:"name"`
    DNI      string `json:"dni"`
}

// contraseña compartida por todos los becados; se puede reemplazar por entorno
const contrasenaFija = "Colquisiri2025$$"

var datos = []Becado{
    {Username: "lsanchez", Name: "Lucas Sanchez", DNI: "71347877"},
    {Username: "eperez", Name: "Esmeralda Pérez Gómez", DNI: "60338189"},
    {Username: "icosme", Name: "Isabel Yesenia Cosme Garcilazo", DNI: "61088077"},
    {Username: "aflores", Name: "Anyeli Flores Pino", DNI: "60774149"},
    {Username: "jcastillo", Name: "Franklin Olortegui Dominguez", DNI: "60022089"},
    {Username: "yreyquez", Name: "Yeff Yayko Requez Flores", DNI: "60623170"},
    {Username: "naldana", Name: "Nicol Sharlot Aldana Huaraca", DNI: "61253853"},
    {Username: "jsaavedra", Name: "Jhordan Michael Saavedra Condori", DNI: "61091722"},
    {Username: "aavendaño", Name: "Avelino Avendaño Jearen", DNI: "61035191"},
    {Username: "jmontañez", Name: "Jefferson Montañez Roque", DNI: "61201006"},
    {Username: "jrodriguez", Name: "Dennis Jhordan Rodriguez Rosales", DNI: "61111104"},
    {Username: "svergara", Name: "Stefany Jarumi Vergara Paredes", DNI: "60853167"},
    {Username: "tvillanueva", Name: "Tatiana Sofia Villanueva Povis", DNI: "60479674"},
    {Username: "frodriguez", Name: "Fernando Rodriguez Malvas", DNI: "63301006"},
    {Username: "mcarhuas", Name: "Margarita Samar Carhuas", DNI: "60567906"},
    {Username: "lchavez", Name: "Luz Yadira Chavez Ramirez", DNI: "60228196"},
    {Username: "jperez", Name: "Jairo Irven Perez Huiza", DNI: "61276579"},
    {Username: "kluicho", Name: "Kristel Yassady Luicho Tarazona", DNI: "61027487"},
    {Username: "cchavez", Name: "Caterin Diana Chavez Ferrer", DNI: "61111296"},
}

type Roster struct {
    becados    []Becado
    contrasena string
}

func NewRoster(becados []Becado, contrasena string) *Roster {
    return &Roster{becados: becados, contrasena: contrasena}
}

// Default arma el roster con los becados registrados. Con contraseña vacía
// se usa la compartida fija.
func Default(contrasena string) *Roster {
    if contrasena == "" { contrasena = contrasenaFija }
    return NewRoster(datos, contrasena)
}

func (r *Roster) FindByUsername(usuario string) (Becado, bool) {
    for _, b := range r.becados {
        if strings.EqualFold(b.Username, usuario) { return b, true }
    }
    return Becado{}, false
}

func (r *Roster) ValidatePassword(clave string) bool {
    return clave == r.contrasena
}

// Autenticar valida la contraseña antes de buscar el usuario, igual que el
// formulario original.
func (r *Roster) Autenticar(usuario, clave string) (Becado, error) {
    if !r.ValidatePassword(clave) {
        return Becado{}, ErrContrasenaIncorrecta
    }
    b, ok := r.FindByUsername(usuario)
    if !ok {
        return Becado{}, ErrUsuarioNoEncontrado
    }
    return b, nil
}
