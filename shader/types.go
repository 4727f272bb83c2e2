package shader

// Boolean and integer vectors. Float vectors and matrices use mgl32,
// double vectors use mgl64.
type (
	BVec2 [2]bool
	BVec3 [3]bool
	BVec4 [4]bool

	IVec2 [2]int32
	IVec3 [3]int32
	IVec4 [4]int32

	UVec2 [2]uint32
	UVec3 [3]uint32
	UVec4 [4]uint32
)

func boolInts(v ...bool) []int32 {
	out := make([]int32, len(v))
	for i, b := range v {
		if b {
			out[i] = 1
		}
	}
	return out
}
