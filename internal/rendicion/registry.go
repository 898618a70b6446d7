package rendicion

import "sync"

// Registry guarda la rendición viva de cada becado autenticado. El original
// corría en un solo hilo de navegador; acá el host HTTP es concurrente, así
// que el mapa va con candado. Cada becado opera su propia rendición desde una
// sola pestaña, por lo que no hace falta serializar dentro de la rendición.
type Registry struct {
    mu    sync.RWMutex
    vivas map[string]*Rendicion
}

func NewRegistry() *Registry {
    return &Registry{vivas: make(map[string]*Rendicion)}
}

// Obtener devuelve la rendición del usuario, creándola en el primer acceso.
func (reg *Registry) Obtener(usuario string) *Rendicion {
    reg.mu.RLock()
    r, ok := reg.vivas[usuario]
    reg.mu.RUnlock()
    if ok { return r }

    reg.mu.Lock()
    defer reg.mu.Unlock()
    if r, ok := reg.vivas[usuario]; ok { return r }
    r = NewRendicion()
    reg.vivas[usuario] = r
    return r
}

func (reg *Registry) Borrar(usuario string) {
    reg.mu.Lock()
    delete(reg.vivas, usuario)
    reg.mu.Unlock()
}
