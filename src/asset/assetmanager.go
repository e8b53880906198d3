package asset

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// Manager owns the registered file systems, the registered asset types and
// every asset loaded through it.
type Manager struct {
	fileSystems         []*fsWrapper
	assetDescriptors    map[string]*AssetDescriptor
	assetDescriptorList []*AssetDescriptor
	writeFS             WriteableFileSystem

	// Maps a Path to an already loaded asset
	loadPathToAsset map[Path]Asset

	log *log.Logger
}

type fsWrapper struct {
	FileSystem fs.FS
	Priority   int
}

type Option func(*Manager)

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{
		fileSystems:      []*fsWrapper{},
		assetDescriptors: map[string]*AssetDescriptor{},
		loadPathToAsset:  map[Path]Asset{},
		log: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "asset",
		}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterFileSystem adds filesystem to the search list.  File systems with
// a lower priority are searched first.
func (m *Manager) RegisterFileSystem(filesystem fs.FS, priority int) {
	m.fileSystems = append(m.fileSystems, &fsWrapper{FileSystem: filesystem, Priority: priority})
	slices.SortStableFunc(m.fileSystems, func(a, b *fsWrapper) int {
		return a.Priority - b.Priority
	})
}

func (m *Manager) RegisterWritableFileSystem(filesystem WriteableFileSystem) {
	m.writeFS = filesystem
}

// cleanPath turns an engine path into an fs.FS name.  Game scripts use
// leading slashes and backslashes interchangeably.
func cleanPath(p Path) (string, error) {
	name := strings.ReplaceAll(string(p), "\\", "/")
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: "open", Path: string(p), Err: fs.ErrInvalid}
	}
	return name, nil
}

func (m *Manager) ReadFile(p Path) ([]byte, error) {
	name, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	for _, fsys := range m.fileSystems {
		data, err := fs.ReadFile(fsys.FileSystem, name)
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("unable to find path (%s) in any registered FS: %w", p, fs.ErrNotExist)
}

// Open returns a stream for the first registered file system holding p.
// The caller must close it.
func (m *Manager) Open(p string) (io.ReadCloser, error) {
	name, err := cleanPath(Path(p))
	if err != nil {
		return nil, err
	}
	for _, fsys := range m.fileSystems {
		f, err := fsys.FileSystem.Open(name)
		if err != nil {
			continue
		}
		if st, err := f.Stat(); err == nil && st.IsDir() {
			f.Close()
			continue
		}
		return f, nil
	}
	return nil, fmt.Errorf("unable to find path (%s) in any registered FS: %w", p, fs.ErrNotExist)
}

// WalkFiles is like fs.WalkDir, but it will walk all the readable file systems
// registered with RegisterFileSystem
func (m *Manager) WalkFiles(fn fs.WalkDirFunc) error {
	var e error
	for _, fsys := range m.fileSystems {
		err := fs.WalkDir(fsys.FileSystem, ".", func(path string, d fs.DirEntry, err error) error {
			e = fn(path, d, err)
			return e
		})
		if err != nil {
			return err
		}
		// if fn has requested SkipAll, then we early out
		if e == fs.SkipAll {
			return nil
		}
	}
	return e
}

// FilterFilesByType will return all the assets that have the exact type as typ.  If typ
// is an interface, return all the files that implement the interface
func (m *Manager) FilterFilesByType(typ reflect.Type) ([]Path, error) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	var ret []Path
	err := m.WalkFiles(func(p string, d fs.DirEntry, _ error) error {
		if d != nil && d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, ".json") {
			return nil
		}
		data, err := m.ReadFile(Path(p))
		if err != nil {
			return err
		}
		container := onDiskLoadFormat{}
		if err := json.Unmarshal(data, &container); err != nil {
			// not every json file is an asset
			return nil
		}
		if desc, ok := m.assetDescriptors[container.Type]; ok {
			if matchesOrImplements(typ, desc.Type) && !slices.Contains(ret, Path(p)) {
				ret = append(ret, Path(p))
			}
		}
		return nil
	})
	slices.Sort(ret)
	return ret, err
}

// FilterFilesOfType is FilterFilesByType for a static type.
func FilterFilesOfType[T any](m *Manager) ([]Path, error) {
	typ := reflect.TypeOf((*T)(nil))
	return m.FilterFilesByType(typ)
}

// returns true if a and b are the same type or b implements a
func matchesOrImplements(a, b reflect.Type) bool {
	if a == b {
		return true
	}
	if a.Kind() == reflect.Interface {
		// if we are matching against an interface we need to use PointerTo
		// because the Type in the descriptor is the real type, not a *T
		return reflect.PointerTo(b).Implements(a)
	}
	return false
}

func (m *Manager) RegisterAsset(zeroAsset any) {
	m.RegisterAssetFactory(zeroAsset, func() (Asset, error) {
		zeroType := reflect.TypeOf(zeroAsset)
		zero := reflect.New(zeroType)
		return zero.Interface().(Asset), nil
	})
}

func (m *Manager) RegisterAssetFactory(zeroAsset any, factoryFunction FactoryFunc) {
	zeroType := reflect.TypeOf(zeroAsset)
	if zeroType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("RegisterAssetFactory must be called with a concrete type that is a struct.  This is a programming error - %v", zeroAsset))
	}

	// wrap the client provided factoryFunc with one that also initializes structs
	createFunc := func() (Asset, error) {
		a, err := factoryFunction()
		if a != nil {
			callAllDefaultInitializers(a)
		}
		return a, err
	}

	name, typeName := ObjectTypeName(zeroAsset)
	m.log.Debug("registered asset", "type", typeName)
	descriptor := &AssetDescriptor{
		Name:     name,
		FullName: typeName,
		Create:   createFunc,
		Type:     zeroType,
	}
	if _, exists := m.assetDescriptors[typeName]; !exists {
		m.assetDescriptorList = append(m.assetDescriptorList, descriptor)
	} else {
		m.assetDescriptorList = slices.DeleteFunc(m.assetDescriptorList, func(d *AssetDescriptor) bool {
			return d.FullName == typeName
		})
		m.assetDescriptorList = append(m.assetDescriptorList, descriptor)
	}
	m.assetDescriptors[typeName] = descriptor
	slices.SortFunc(m.assetDescriptorList, func(a, b *AssetDescriptor) int {
		return strings.Compare(a.Name, b.Name)
	})
}

func (m *Manager) AssetDescriptors() []*AssetDescriptor {
	return m.assetDescriptorList
}
