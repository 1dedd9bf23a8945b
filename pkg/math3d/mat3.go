package math3d

// Mat3 is a 3x3 matrix stored in column-major order, used exclusively for
// transforming normals: the inverse-transpose of a model matrix's
// upper-left 3x3 block, so normals stay perpendicular to their surface
// under non-uniform scale.
type Mat3 [9]float32

// Mat3FromMat4 extracts the upper-left 3x3 block of m.
func Mat3FromMat4(m Mat4) Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// NormalMatrix derives the matrix that correctly transforms normals under
// model, i.e. the inverse-transpose of its upper-left 3x3. Per the
// rasterizer's contract, a singular model matrix substitutes the identity
// 3x3 rather than failing.
func NormalMatrix(model Mat4) Mat3 {
	inv, err := model.Inverse()
	if err != nil {
		return Identity3()
	}
	return Mat3FromMat4(inv).Transpose()
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// MulVec3 transforms a Vec3 as a direction.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}
