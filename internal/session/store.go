package session

import (
    "github.com/gin-gonic/gin"
    "github.com/goccy/go-json"

    "rendicion/internal/becados"
)

// CookieKey es la única clave de sesión, heredada del localStorage original.
const CookieKey = "currentUser"

type Store interface {
    Save(c *gin.Context, b becados.Becado) error
    Load(c *gin.Context) (becados.Becado, bool)
    Clear(c *gin.Context)
}

// CookieStore serializa la identidad como JSON dentro de una cookie http-only.
// No firma ni cifra: la sesión es una marca de navegación, no una frontera de
// seguridad.
type CookieStore struct{}

func NewCookieStore() *CookieStore { return &CookieStore{} }

func (s *CookieStore) Save(c *gin.Context, b becados.Becado) error {
    data, err := json.Marshal(b)
    if err != nil { return err }
    c.SetCookie(CookieKey, string(data), 0, "/", "", false, true)
    return nil
}

func (s *CookieStore) Load(c *gin.Context) (becados.Becado, bool) {
    v, err := c.Cookie(CookieKey)
    if err != nil || v == "" {
        return becados.Becado{}, false
    }
    var b becados.Becado
    // una cookie malformada cuenta como sesión ausente, nunca tumba el guard
    if err := json.Unmarshal([]byte(v), &b); err != nil || b.Username == "" {
        return becados.Becado{}, false
    }
    return b, true
}

func (s *CookieStore) Clear(c *gin.Context) {
    c.SetCookie(CookieKey, "", -1, "/", "", false, true)
}

// MemStore guarda la sesión en memoria del proceso. Sirve para pruebas y para
// hosts sin cookies, donde toda carga previa a un Save es ausente.
type MemStore struct {
    actual *becados.Becado
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Save(_ *gin.Context, b becados.Becado) error {
    s.actual = &b
    return nil
}

func (s *MemStore) Load(_ *gin.Context) (becados.Becado, bool) {
    if s.actual == nil {
        return becados.Becado{}, false
    }
    return *s.actual, true
}

func (s *MemStore) Clear(_ *gin.Context) { s.actual = nil }
