package asset

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Save writes toSave to the writable file system as a typed container and
// remembers it as the in-memory copy of path.
func (m *Manager) Save(path Path, toSave Asset) error {
	if m.writeFS == nil {
		return fmt.Errorf("can't save asset - no writable FS")
	}
	// toSave must be a pointer, but the top level needs to be
	// saved as a struct
	if reflect.TypeOf(toSave).Kind() != reflect.Pointer {
		return fmt.Errorf("can't save asset %T - not a pointer", toSave)
	}

	_, fullname := ObjectTypeName(toSave)
	if _, ok := m.assetDescriptors[fullname]; !ok {
		return fmt.Errorf("type %s is not registered with the asset system", fullname)
	}

	container := onDiskSaveFormat{
		Type:  fullname,
		Inner: toSave,
	}
	data, err := json.MarshalIndent(container, "", "  ")
	if err != nil {
		return err
	}

	if !strings.HasSuffix(string(path), ".json") {
		path = path + ".json"
	}
	if err := m.writeFS.WriteFile(path, data); err != nil {
		return err
	}
	m.loadPathToAsset[path] = toSave
	m.log.Debug("saved asset", "path", path, "type", fullname)
	return nil
}
