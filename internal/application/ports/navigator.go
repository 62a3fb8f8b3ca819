package ports

// Rutas de navegación que emite la sesión.
const (
	RouteLogin     = "/auth/login"
	RouteDashboard = "/dashboard"
)

// Navigator puerto de navegación: la sesión pide ir a una ruta y la capa de vista decide cómo.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapta una función a Navigator.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }
