package flat

import "github.com/bradbev/flatfont/src/asset"

func RegisterAllFlatTypes(m *asset.Manager) {
	m.RegisterAsset(ShapeFont{})
}
