package sim

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func typeId(t reflect.Type) int {
	ptr := (*iface)(unsafe.Pointer(&t)).data
	return int(uintptr(ptr))
}

// Resources is a store of singletons keyed by their type. Each type has at
// most one entry, held by pointer so that systems share and mutate it.
type Resources struct {
	entries *intmap.Map[int, any]
}

func NewResources() *Resources {
	return &Resources{entries: intmap.New[int, any](16)}
}

// Provide stores v as the resource of type T, replacing any previous one.
func Provide[T any](r *Resources, v *T) {
	r.entries.Put(typeId(reflect.TypeFor[T]()), v)
}

// Fetch returns the resource of type T.
func Fetch[T any](r *Resources) (*T, bool) {
	v, ok := r.entries.Get(typeId(reflect.TypeFor[T]()))
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Remove drops the resource of type T.
func Remove[T any](r *Resources) {
	r.entries.Del(typeId(reflect.TypeFor[T]()))
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return r.entries.Len()
}

// Resource gives a system typed access to one entry of Resources. Fields of
// this type are initialised automatically by Scheduler.Register.
type Resource[T any] struct {
	resources *Resources
}

// Init binds the accessor to r.
func (s *Resource[T]) Init(r *Resources) {
	s.resources = r
}

// Get returns the resource, or nil if none of type T has been provided.
func (s *Resource[T]) Get() *T {
	if s.resources == nil {
		return nil
	}
	ptr, _ := Fetch[T](s.resources)
	return ptr
}

// Exists reports whether a resource of type T has been provided.
func (s *Resource[T]) Exists() bool {
	return s.Get() != nil
}
