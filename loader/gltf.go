// Package loader reads assets from disk into the types raster3d renders: glTF / GLB documents into Meshes, and
// image files into textures.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/solarlune/raster3d"
)

// ErrNoMeshes is returned when a glTF document (or the part of it selected by the load options) holds no
// triangle meshes.
var ErrNoMeshes = errors.New("loader: no meshes found")

// GLTFLoadOptions alters how a glTF document is turned into a Mesh.
type GLTFLoadOptions struct {
	// MeshName, if set, loads only the glTF meshes with this name.
	MeshName string
	// IgnoreNodeTransforms loads mesh data as authored, rather than placed by the scene's node hierarchy.
	IgnoreNodeTransforms bool
	// TextureMaxSize is passed on to the embedded texture's decoding; see LoadTexture().
	TextureMaxSize int
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		TextureMaxSize: 1024,
	}
}

// Asset is what a glTF document loads into: one Mesh merging every selected primitive, plus the first texture
// embedded in the document, if there is one.
type Asset struct {
	Mesh    *raster3d.Mesh
	Texture image.Image
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, using a provided GLTFLoadOptions struct to alter how
// the file is loaded. Passing nil for loadOptions will load the file using default load options.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Asset, error) {

	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}

	return LoadGLTFData(fileData, loadOptions)

}

// LoadGLTFData loads .gltf or .glb file data, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options.
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) (*Asset, error) {

	doc := gltf.NewDocument()

	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("loader: decoding glTF: %w", err)
	}

	return FromDocument(doc, loadOptions)

}

// FromDocument converts an already decoded glTF document. Positions, TEXCOORD_0 and indices are read; normals are
// not, as the Engine recomputes them every frame. Triangle lists become one face per triangle, and triangle fans
// become a single polygonal face.
func FromDocument(doc *gltf.Document, loadOptions *GLTFLoadOptions) (*Asset, error) {

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	mesh := raster3d.NewMesh("")

	add := func(meshIndex int, transform raster3d.Mat4) error {
		gltfMesh := doc.Meshes[meshIndex]
		if loadOptions.MeshName != "" && gltfMesh.Name != loadOptions.MeshName {
			return nil
		}
		if mesh.Name == "" {
			mesh.Name = gltfMesh.Name
		}
		return appendMesh(mesh, doc, gltfMesh, transform)
	}

	if scene := sceneNodes(doc); scene != nil && !loadOptions.IgnoreNodeTransforms {

		var walk func(nodeIndex int, parent raster3d.Mat4) error

		walk = func(nodeIndex int, parent raster3d.Mat4) error {
			node := doc.Nodes[nodeIndex]
			transform := parent.Mult(nodeMatrix(node))
			if node.Mesh != nil {
				if err := add(*node.Mesh, transform); err != nil {
					return err
				}
			}
			for _, child := range node.Children {
				if err := walk(child, transform); err != nil {
					return err
				}
			}
			return nil
		}

		for _, nodeIndex := range scene {
			if err := walk(nodeIndex, raster3d.Identity()); err != nil {
				return nil, err
			}
		}

	} else {

		for i := range doc.Meshes {
			if err := add(i, raster3d.Identity()); err != nil {
				return nil, err
			}
		}

	}

	if mesh.FaceCount() == 0 {
		return nil, ErrNoMeshes
	}

	mesh.UpdateBounds()

	asset := &Asset{Mesh: mesh}

	tex, err := embeddedTexture(doc, loadOptions.TextureMaxSize)
	if err != nil {
		return nil, err
	}
	asset.Texture = tex

	raster3d.Logger().Debug().
		Str("mesh", mesh.Name).
		Int("vertices", mesh.VertexCount()).
		Int("faces", mesh.FaceCount()).
		Bool("texture", tex != nil).
		Msg("glTF loaded")

	return asset, nil

}

// sceneNodes returns the root nodes of the document's default scene (or its first scene), or nil if it has none.
func sceneNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	scene := doc.Scenes[0]
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		scene = doc.Scenes[*doc.Scene]
	}
	return scene.Nodes
}

// appendMesh adds every triangle primitive of a glTF mesh to the Mesh, with positions transformed by the given matrix.
func appendMesh(mesh *raster3d.Mesh, doc *gltf.Document, gltfMesh *gltf.Mesh, transform raster3d.Mat4) error {

	for p, prim := range gltfMesh.Primitives {

		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != gltf.PrimitiveTriangleFan {
			raster3d.Logger().Warn().Str("mesh", gltfMesh.Name).Int("primitive", p).Msg("skipping primitive that isn't made of triangles")
			continue
		}

		posAccessor, exists := prim.Attributes[gltf.POSITION]
		if !exists {
			return fmt.Errorf("loader: mesh %q primitive %d has no positions", gltfMesh.Name, p)
		}

		vertPos, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], [][3]float32{})
		if err != nil {
			return fmt.Errorf("loader: reading positions of mesh %q: %w", gltfMesh.Name, err)
		}

		var texCoords [][2]float32

		if texCoordAccessor, texCoordExists := prim.Attributes[gltf.TEXCOORD_0]; texCoordExists {
			texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[texCoordAccessor], [][2]float32{})
			if err != nil {
				return fmt.Errorf("loader: reading texture coordinates of mesh %q: %w", gltfMesh.Name, err)
			}
		}

		var indices []uint32

		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], []uint32{})
			if err != nil {
				return fmt.Errorf("loader: reading indices of mesh %q: %w", gltfMesh.Name, err)
			}
		} else {
			indices = make([]uint32, len(vertPos))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := mesh.VertexCount()

		for i, v := range vertPos {
			uv := raster3d.Vec2{}
			if i < len(texCoords) {
				// glTF's V runs down from the top of the image; raster3d's runs up.
				uv = raster3d.Vec2{X: texCoords[i][0], Y: -(texCoords[i][1] - 1)}
			}
			mesh.AddVertex(transform.MultPoint(raster3d.Vec3{X: v[0], Y: v[1], Z: v[2]}), uv)
		}

		if prim.Mode == gltf.PrimitiveTriangleFan {
			face := make([]int, len(indices))
			for i, j := range indices {
				face[i] = base + int(j)
			}
			mesh.AddFace(face...)
			continue
		}

		for i := 0; i+2 < len(indices); i += 3 {
			mesh.AddFace(base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
		}

	}

	return nil

}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeMatrix returns the node's local transform as a row-major Mat4.
func nodeMatrix(node *gltf.Node) raster3d.Mat4 {

	m := node.MatrixOrDefault()
	if m != identityMatrix {
		// glTF matrices are column-major.
		var out raster3d.Mat4
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				out[r*4+c] = float32(m[c*4+r])
			}
		}
		return out
	}

	t := node.TranslationOrDefault()
	q := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	x, y, z, w := float32(q[0]), float32(q[1]), float32(q[2]), float32(q[3])

	rotation := raster3d.Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0,
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0,
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}

	return raster3d.NewMat4Translate(float32(t[0]), float32(t[1]), float32(t[2])).
		Mult(rotation).
		Mult(raster3d.NewMat4Scale(float32(s[0]), float32(s[1]), float32(s[2])))

}

// embeddedTexture decodes the first image stored inside the document's buffers, if any. Images referenced by
// external URI are not followed.
func embeddedTexture(doc *gltf.Document, maxSize int) (image.Image, error) {

	for _, gltfImage := range doc.Images {

		if gltfImage.BufferView == nil {
			continue
		}

		imageData, err := modeler.ReadBufferView(doc, doc.BufferViews[*gltfImage.BufferView])
		if err != nil {
			return nil, fmt.Errorf("loader: reading embedded image %q: %w", gltfImage.Name, err)
		}

		tex, err := DecodeTexture(bytes.NewReader(imageData), maxSize)
		if err != nil {
			return nil, fmt.Errorf("loader: embedded image %q: %w", gltfImage.Name, err)
		}

		return tex, nil

	}

	return nil, nil

}
