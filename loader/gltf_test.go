package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/raster3d"
)

// newQuadDocument builds a document holding one quad mesh, placed by a node that moves it 2 units along +Z and
// doubles its size.
func newQuadDocument() *gltf.Document {

	doc := gltf.NewDocument()

	pos := modeler.WritePosition(doc, [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	doc.Meshes = []*gltf.Mesh{{
		Name: "Quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: uv},
		}},
	}}

	doc.Nodes = []*gltf.Node{{
		Name:        "Quad",
		Mesh:        gltf.Index(0),
		Translation: [3]float64{0, 0, 2},
		Scale:       [3]float64{2, 2, 2},
	}}

	doc.Scenes = []*gltf.Scene{{Name: "Scene", Nodes: []int{0}}}
	doc.Scene = gltf.Index(0)

	return doc

}

func assertVec3(t *testing.T, want, got raster3d.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestFromDocument(t *testing.T) {

	asset, err := FromDocument(newQuadDocument(), nil)
	require.NoError(t, err)

	mesh := asset.Mesh
	assert.Equal(t, "Quad", mesh.Name)
	require.Equal(t, 4, mesh.VertexCount())
	require.Equal(t, 2, mesh.FaceCount())
	assert.Equal(t, []int{0, 1, 2}, mesh.FaceIndices(0))
	assert.Equal(t, []int{0, 2, 3}, mesh.FaceIndices(1))

	assertVec3(t, raster3d.Vec3{X: -2, Y: -2, Z: 2}, mesh.Vertex(0))
	assertVec3(t, raster3d.Vec3{X: 2, Y: 2, Z: 2}, mesh.Vertex(2))

	// V is flipped so it runs up from the bottom of the texture.
	assert.True(t, mesh.HasTexCoords())
	assert.Equal(t, raster3d.Vec2{X: 0, Y: 0}, mesh.TexCoord(0))
	assert.Equal(t, raster3d.Vec2{X: 1, Y: 1}, mesh.TexCoord(2))

	assert.Nil(t, asset.Texture)
	assert.InDelta(t, 4, mesh.Dimensions.Width(), 1e-5)

}

func TestFromDocumentOptions(t *testing.T) {

	asset, err := FromDocument(newQuadDocument(), &GLTFLoadOptions{IgnoreNodeTransforms: true})
	require.NoError(t, err)
	assertVec3(t, raster3d.Vec3{X: -1, Y: -1, Z: 0}, asset.Mesh.Vertex(0))

	_, err = FromDocument(newQuadDocument(), &GLTFLoadOptions{MeshName: "Cube"})
	assert.ErrorIs(t, err, ErrNoMeshes)

	asset, err = FromDocument(newQuadDocument(), &GLTFLoadOptions{MeshName: "Quad"})
	require.NoError(t, err)
	assert.Equal(t, 2, asset.Mesh.FaceCount())

	_, err = FromDocument(gltf.NewDocument(), nil)
	assert.ErrorIs(t, err, ErrNoMeshes)

}

func TestFromDocumentHierarchy(t *testing.T) {

	doc := newQuadDocument()

	// A parent moving +1 on X, over a child turning the quad 90 degrees around Z.
	doc.Nodes = []*gltf.Node{
		{Name: "Parent", Translation: [3]float64{1, 0, 0}, Children: []int{1}},
		{Name: "Child", Mesh: gltf.Index(0), Rotation: [4]float64{0, 0, 0.70710678, 0.70710678}},
	}
	doc.Scenes[0].Nodes = []int{0}

	asset, err := FromDocument(doc, nil)
	require.NoError(t, err)

	// (1, -1, 0) turns to (1, 1, 0), then moves to (2, 1, 0).
	assertVec3(t, raster3d.Vec3{X: 2, Y: 1, Z: 0}, asset.Mesh.Vertex(1))

}

func TestFromDocumentTriangleFan(t *testing.T) {

	doc := newQuadDocument()
	prim := doc.Meshes[0].Primitives[0]
	prim.Mode = gltf.PrimitiveTriangleFan
	prim.Indices = nil

	asset, err := FromDocument(doc, nil)
	require.NoError(t, err)
	require.Equal(t, 1, asset.Mesh.FaceCount())
	assert.Equal(t, []int{0, 1, 2, 3}, asset.Mesh.FaceIndices(0))
	assert.Equal(t, 2, asset.Mesh.TriangleCount())

	prim.Mode = gltf.PrimitiveLines
	_, err = FromDocument(doc, nil)
	assert.ErrorIs(t, err, ErrNoMeshes, "non-triangle primitives are skipped")

}

func TestLoadGLTFRoundTrip(t *testing.T) {

	doc := newQuadDocument()

	pngData := bytes.Buffer{}
	checker := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	checker.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	checker.SetNRGBA(1, 1, color.NRGBA{0, 0, 255, 255})
	require.NoError(t, png.Encode(&pngData, checker))

	_, err := modeler.WriteImage(doc, "checker", "image/png", &pngData)
	require.NoError(t, err)

	encoded := bytes.Buffer{}
	encoder := gltf.NewEncoder(&encoded)
	encoder.AsBinary = true
	require.NoError(t, encoder.Encode(doc))

	asset, err := LoadGLTFData(encoded.Bytes(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, asset.Mesh.VertexCount())

	require.NotNil(t, asset.Texture)
	assert.Equal(t, image.Rect(0, 0, 2, 2), asset.Texture.Bounds())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, asset.Texture.At(0, 0))

	path := filepath.Join(t.TempDir(), "quad.glb")
	require.NoError(t, os.WriteFile(path, encoded.Bytes(), 0o644))

	fromFile, err := LoadGLTFFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, asset.Mesh.Positions, fromFile.Mesh.Positions)

	_, err = LoadGLTFFile(filepath.Join(t.TempDir(), "missing.glb"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadGLTFData([]byte("definitely not glTF"), nil)
	assert.Error(t, err)

}
