package asset

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// onDiskLoadFormat must be the same as onDiskSaveFormat, except for the type of Inner
type onDiskLoadFormat struct {
	Type  string
	Inner json.RawMessage
}

// onDiskSaveFormat must be the same as onDiskLoadFormat, except for the type of Inner
type onDiskSaveFormat struct {
	Type  string
	Inner interface{}
}

func (m *Manager) Load(assetPath Path) (Asset, error) {
	return m.LoadWithOptions(assetPath, LoadOptions{})
}

func (m *Manager) LoadWithOptions(assetPath Path, options LoadOptions) (Asset, error) {
	// If we are able, don't reload an existing asset
	alreadyLoadedAsset, loaded := m.loadPathToAsset[assetPath]
	if loaded && !options.ForceReload {
		return alreadyLoadedAsset, nil
	}

	data, err := m.ReadFile(assetPath)
	if err != nil {
		return nil, err
	}

	// load the on disk format and validate things
	container := onDiskLoadFormat{}
	if err := json.Unmarshal(data, &container); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetPath, err)
	}

	loadedAsset, err := m.loadFromOnDiskLoadFormat(&container, alreadyLoadedAsset)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetPath, err)
	}

	// save the reference to this asset to prevent future loading
	m.loadPathToAsset[assetPath] = loadedAsset
	m.log.Debug("loaded asset", "path", assetPath, "type", container.Type)
	return loadedAsset, nil
}

// LoadAs loads assetPath and checks that it holds a *T.
func LoadAs[T any](m *Manager, assetPath Path) (*T, error) {
	a, err := m.Load(assetPath)
	if err != nil {
		return nil, err
	}
	typed, ok := a.(*T)
	if !ok {
		_, want := TypeName(reflect.TypeOf((*T)(nil)))
		_, got := ObjectTypeName(a)
		return nil, fmt.Errorf("asset %s: wanted %s, loaded %s", assetPath, want, got)
	}
	return typed, nil
}

func (m *Manager) loadFromOnDiskLoadFormat(container *onDiskLoadFormat, alreadyLoadedAsset Asset) (Asset, error) {
	assetDescriptor, ok := m.assetDescriptors[container.Type]
	if !ok {
		return nil, fmt.Errorf("unknown asset '%s' - is type registered?", container.Type)
	}

	assetToLoadInto := alreadyLoadedAsset
	if assetToLoadInto == nil {
		var err error
		assetToLoadInto, err = assetDescriptor.Create()
		if err != nil {
			return nil, err
		}
	}

	_, TType := ObjectTypeName(assetToLoadInto)
	if TType != container.Type {
		return nil, fmt.Errorf("load type mismatch.  Wanted %s, loaded %s", TType, container.Type)
	}

	// Inner can be missing - it means the whole object is default
	if len(container.Inner) > 0 && string(container.Inner) != "null" {
		if err := json.Unmarshal(container.Inner, assetToLoadInto); err != nil {
			return nil, err
		}
	}

	if postLoad, ok := assetToLoadInto.(PostLoadingAsset); ok {
		postLoad.PostLoad()
	}
	return assetToLoadInto, nil
}
