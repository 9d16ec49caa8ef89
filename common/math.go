package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention with depth mapped to [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Translation writes a 4x4 translation matrix to out (column-major).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: translation components
func Translation(out []float32, x, y, z float32) {
	Identity(out)
	out[12] = x
	out[13] = y
	out[14] = z
}

// RotationX writes a 4x4 rotation matrix about the X axis to out (column-major).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians
func RotationX(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[5] = c
	out[6] = s
	out[9] = -s
	out[10] = c
}

// RotationY writes a 4x4 rotation matrix about the Y axis to out (column-major).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians
func RotationY(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[0] = c
	out[2] = -s
	out[8] = s
	out[10] = c
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - posX, posY, posZ: translation in world space
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
//   - scaleX, scaleY, scaleZ: scale factors along each axis
func BuildModelMatrix(out []float32, posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) {
	cx := float32(math.Cos(float64(rotX)))
	sx := float32(math.Sin(float64(rotX)))
	cy := float32(math.Cos(float64(rotY)))
	sy := float32(math.Sin(float64(rotY)))
	cz := float32(math.Cos(float64(rotZ)))
	sz := float32(math.Sin(float64(rotZ)))

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scaleX
	out[1] = (cx * sz) * scaleX
	out[2] = (-sy*cz + cy*sx*sz) * scaleX
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scaleY
	out[5] = (cx * cz) * scaleY
	out[6] = (sy*sz + cy*sx*cz) * scaleY
	out[7] = 0

	out[8] = (sy * cx) * scaleZ
	out[9] = (-sx) * scaleZ
	out[10] = (cy * cx) * scaleZ
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1
}

// TransformVec4 multiplies a column-major 4x4 matrix with a 4-component vector.
// Used for projecting world-space points into clip space on the CPU side.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - x, y, z, w: the vector components
//
// Returns:
//   - [4]float32: the transformed vector
func TransformVec4(m []float32, x, y, z, w float32) [4]float32 {
	return [4]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12]*w,
		m[1]*x + m[5]*y + m[9]*z + m[13]*w,
		m[2]*x + m[6]*y + m[10]*z + m[14]*w,
		m[3]*x + m[7]*y + m[11]*z + m[15]*w,
	}
}

// Normalize3 normalizes a 3-component vector in place. Zero vectors are left unchanged.
//
// Parameters:
//   - v: the vector to normalize (must be at least 3 elements)
func Normalize3(v []float32) {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return
	}
	v[0] /= l
	v[1] /= l
	v[2] /= l
}

// Dot3 returns the dot product of two 3-component vectors.
//
// Parameters:
//   - a: first vector (must be at least 3 elements)
//   - b: second vector (must be at least 3 elements)
//
// Returns:
//   - float32: the dot product
func Dot3(a, b []float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Clamp clamps v into the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
