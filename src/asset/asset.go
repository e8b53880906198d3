/*
* Assets on disk have the same format - a container.  This struct holds
* the registered type name of the asset and then an Inner that holds the
* user defined data.
*
* The Rules of Assets
* An Asset loaded through a Manager is loaded once.  Loading the same Path
* again returns the same in-memory object unless ForceReload is asked for.
* Game fonts are assets: a bitmap font definition is a JSON file that names
* its type and carries its glyph table inline.
*
* Raw files (TTF data, game archives) are read through the same layered
* file systems, so an in-memory overlay can shadow files on disk.
 */

package asset

import (
	"reflect"
)

// Path is a distinct type from string so that callers can tell a
// file system path apart from display text.
type Path string

type AssetDescriptor struct {
	Name     string
	FullName string
	Create   FactoryFunc
	Type     reflect.Type
}

// Asset can be any type.
type Asset interface{}
type PostLoadingAsset interface {
	PostLoad()
}

// Any type that implements DefaultInitializer will
// have DefaultInitialize called when assets are created.
// Types do not need to be assets for this to work.
type DefaultInitializer interface {
	DefaultInitialize()
}

type FactoryFunc func() (Asset, error)

type LoadOptions struct {
	// ForceReload will reload the asset from disk.  If the asset already
	// exists in memory that same object will be reused.
	ForceReload bool
}

func ObjectTypeName(obj any) (name string, fullname string) {
	return TypeName(reflect.TypeOf(obj))
}

func TypeName(t reflect.Type) (name string, fullname string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name(), t.PkgPath() + "." + t.Name()
}
