package resp

import (
	"net/http"
	"reflect"

	"github.com/ncobase/envelope/paging"
)

// Hook customizes the built result of a resource or collection before it
// is returned. req is nil when the context carries no request.
type Hook func(req *http.Request, res *Result)

// Arrayable is implemented by values that convert themselves to plain data.
type Arrayable interface {
	ToArray() any
}

// Transformable is a single domain object plus the function shaping it for
// output. It is implemented by *Resource only.
type Transformable interface {
	// Unwrap returns the underlying domain object
	Unwrap() any
	// Resolve returns the transformed representation
	Resolve() any
	hook() Hook
}

// Resource wraps one domain object with its transform function.
type Resource[T any] struct {
	value     T
	transform func(T) any
	onResult  Hook
}

// NewResource creates a resource. A nil transform renders the value as is.
func NewResource[T any](value T, transform func(T) any) *Resource[T] {
	return &Resource[T]{value: value, transform: transform}
}

// WithResponse sets the hook invoked with the request and the built result.
func (r *Resource[T]) WithResponse(h Hook) *Resource[T] {
	r.onResult = h
	return r
}

// Unwrap implements Transformable
func (r *Resource[T]) Unwrap() any {
	return r.value
}

// Resolve implements Transformable
func (r *Resource[T]) Resolve() any {
	if r.transform == nil {
		return r.value
	}
	return r.transform(r.value)
}

func (r *Resource[T]) hook() Hook {
	return r.onResult
}

// Collection is an ordered list of resources or raw items, optionally paginated.
type Collection struct {
	Items     []any
	Paginator paging.Paginator
	onResult  Hook
}

// NewCollection creates a collection of raw items or Transformable values.
func NewCollection(items ...any) *Collection {
	if items == nil {
		items = []any{}
	}
	return &Collection{Items: items}
}

// CollectionOf wraps every item into a resource sharing one transform.
func CollectionOf[T any](items []T, transform func(T) any) *Collection {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = NewResource(item, transform)
	}
	return &Collection{Items: out}
}

// PageOf wraps the items of an offset page and keeps the page as paginator.
func PageOf[T any](page *paging.Page[T], transform func(T) any) *Collection {
	c := CollectionOf(page.Items, transform)
	c.Paginator = page
	return c
}

// WithPaginator attaches page metadata to the collection.
func (c *Collection) WithPaginator(p paging.Paginator) *Collection {
	c.Paginator = p
	return c
}

// WithResponse sets the hook invoked with the request and the built result.
func (c *Collection) WithResponse(h Hook) *Collection {
	c.onResult = h
	return c
}

// Resolve returns the transformed items.
func (c *Collection) Resolve() []any {
	out := make([]any, len(c.Items))
	for i, item := range c.Items {
		if t, ok := item.(Transformable); ok {
			out[i] = t.Resolve()
			continue
		}
		out[i] = item
	}
	return out
}

// Unwrap returns the underlying domain objects; raw items pass through.
func (c *Collection) Unwrap() []any {
	out := make([]any, len(c.Items))
	for i, item := range c.Items {
		if t, ok := item.(Transformable); ok {
			out[i] = t.Unwrap()
			continue
		}
		out[i] = item
	}
	return out
}

// ToArray implements Arrayable
func (c *Collection) ToArray() any {
	return c.Resolve()
}

// kind is the closed set of output shapes, checked in declaration order.
type kind int

const (
	kindCollection kind = iota
	kindResource
	kindPaginator
	kindArrayable
	kindPlain
)

func classify(data any) kind {
	switch data.(type) {
	case *Collection:
		return kindCollection
	case Transformable:
		return kindResource
	case paging.Paginator:
		return kindPaginator
	case Arrayable:
		return kindArrayable
	default:
		return kindPlain
	}
}

func isNilPointer(data any) bool {
	if data == nil {
		return false
	}
	v := reflect.ValueOf(data)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// wrapScalar wraps bare scalars into a one element list.
func wrapScalar(data any) any {
	if data == nil {
		return data
	}
	switch reflect.ValueOf(data).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return []any{data}
	default:
		return data
	}
}
