// Package formats reads and writes the mesh file formats sureuv operates on.
//
// Only Wavefront OBJ is supported. Faces keep their group, object, material and
// smoothing statements so a round trip changes nothing but texture coordinates.
package formats
