package asset_test

import (
	"io"
	"io/fs"
	"path"
	"testing"

	"github.com/bradbev/flatfont/src/asset"
	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAsset struct {
	Anykey         string
	Size           int
	postLoadCalled bool
}

func (t *testAsset) PostLoad() {
	t.postLoadCalled = true
}

func (t *testAsset) DefaultInitialize() {
	t.Size = 24
}

const testAssetType = "github.com/bradbev/flatfont/src/asset_test.testAsset"

func newTestFS(t *testing.T, files map[string]string) *memfs.FS {
	rootFS := memfs.New()
	for name, data := range files {
		if dir := path.Dir(name); dir != "." {
			require.NoError(t, rootFS.MkdirAll(dir, 0777))
		}
		require.NoError(t, rootFS.WriteFile(name, []byte(data), 0777))
	}
	return rootFS
}

func TestAssetLoad(t *testing.T) {
	data := `{
	"Type": "` + testAssetType + `",
	"Inner": {
		"anykey": "hi"
	}
}`
	testAssetLoad := func(register func(m *asset.Manager)) {
		m := asset.New()
		register(m)
		m.RegisterFileSystem(newTestFS(t, map[string]string{"asset.json": data}), 0)

		a, err := m.Load("asset.json")
		assert.NoError(t, err)
		toTest, ok := a.(*testAsset)
		assert.True(t, ok, "Unable to convert %v to testType", a)
		assert.Equal(t, "hi", toTest.Anykey)
		assert.Equal(t, 24, toTest.Size, "DefaultInitialize was not called")
		assert.True(t, toTest.postLoadCalled, "PostLoad was not called")
	}
	testAssetLoad(func(m *asset.Manager) {
		t.Log("Testing RegisterAsset")
		m.RegisterAsset(testAsset{})
	})
	testAssetLoad(func(m *asset.Manager) {
		t.Log("Testing RegisterAssetFactory")
		m.RegisterAssetFactory(testAsset{}, func() (asset.Asset, error) { return &testAsset{}, nil })
	})
}

func TestAssetLoadedOnce(t *testing.T) {
	m := asset.New()
	m.RegisterAsset(testAsset{})
	m.RegisterFileSystem(newTestFS(t, map[string]string{
		"a.json": `{"Type": "` + testAssetType + `", "Inner": {"Anykey": "once"}}`,
	}), 0)

	first, err := m.Load("a.json")
	require.NoError(t, err)
	second, err := m.Load("a.json")
	require.NoError(t, err)
	assert.Same(t, first, second)

	reloaded, err := m.LoadWithOptions("a.json", asset.LoadOptions{ForceReload: true})
	require.NoError(t, err)
	assert.Same(t, first, reloaded, "a reload reuses the in-memory object")
}

func TestAssetLoadAs(t *testing.T) {
	m := asset.New()
	m.RegisterAsset(testAsset{})
	m.RegisterFileSystem(newTestFS(t, map[string]string{
		"a.json": `{"Type": "` + testAssetType + `"}`,
	}), 0)

	a, err := asset.LoadAs[testAsset](m, "a.json")
	require.NoError(t, err)
	assert.Equal(t, 24, a.Size)

	_, err = asset.LoadAs[struct{ X int }](m, "a.json")
	assert.Error(t, err)
}

func TestAssetUnknownType(t *testing.T) {
	m := asset.New()
	m.RegisterFileSystem(newTestFS(t, map[string]string{
		"a.json": `{"Type": "nope.Nope", "Inner": {}}`,
	}), 0)
	_, err := m.Load("a.json")
	assert.ErrorContains(t, err, "is type registered")
}

func TestFileSystemPriority(t *testing.T) {
	m := asset.New()
	low := newTestFS(t, map[string]string{"fonts/a.ttf": "override"})
	high := newTestFS(t, map[string]string{"fonts/a.ttf": "base", "fonts/b.ttf": "only-base"})
	m.RegisterFileSystem(high, 10)
	m.RegisterFileSystem(low, 0)

	data, err := m.ReadFile("fonts/a.ttf")
	require.NoError(t, err)
	assert.Equal(t, "override", string(data))

	data, err = m.ReadFile("/fonts\\b.ttf")
	require.NoError(t, err)
	assert.Equal(t, "only-base", string(data))

	_, err = m.ReadFile("fonts/c.ttf")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpen(t *testing.T) {
	m := asset.New()
	m.RegisterFileSystem(newTestFS(t, map[string]string{"data/font.ttf": "bytes"}), 0)

	r, err := m.Open("data/font.ttf")
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(b))

	_, err = m.Open("data")
	assert.ErrorIs(t, err, fs.ErrNotExist, "directories are not font streams")

	_, err = m.Open("missing.ttf")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

type writeFS struct {
	fs *memfs.FS
}

func (f *writeFS) WriteFile(path asset.Path, data []byte) error {
	return f.fs.WriteFile(string(path), data, 0777)
}

func TestAssetSave(t *testing.T) {
	m := asset.New()
	wfs := &writeFS{fs: memfs.New()}
	m.RegisterWritableFileSystem(wfs)
	m.RegisterFileSystem(wfs.fs, 0)
	m.RegisterAsset(testAsset{})

	a := &testAsset{Anykey: "saved", Size: 9}
	require.NoError(t, m.Save("saved", a))

	back, err := fs.ReadFile(wfs.fs, "saved.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type": "`+testAssetType+`", "Inner": {"Anykey": "saved", "Size": 9}}`, string(back))

	loaded, err := m.Load("saved.json")
	require.NoError(t, err)
	assert.Same(t, a, loaded)

	err = m.Save("unregistered.json", &struct{ A int }{})
	assert.Error(t, err)
}

func TestFilterFilesOfType(t *testing.T) {
	m := asset.New()
	m.RegisterAsset(testAsset{})
	m.RegisterFileSystem(newTestFS(t, map[string]string{
		"b.json":      `{"Type": "` + testAssetType + `"}`,
		"a.json":      `{"Type": "` + testAssetType + `"}`,
		"other.json":  `{"Type": "other.Type"}`,
		"broken.json": `{`,
		"readme.txt":  `{"Type": "` + testAssetType + `"}`,
		"dir/c.json":  `{"Type": "` + testAssetType + `"}`,
	}), 0)

	paths, err := asset.FilterFilesOfType[testAsset](m)
	require.NoError(t, err)
	assert.Equal(t, []asset.Path{"a.json", "b.json", "dir/c.json"}, paths)
}
