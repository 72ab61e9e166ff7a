package mathutil

var (
	// MirrorY flips rows so +Y points up on an image canvas: diag(1, -1, 1)
	MirrorY = Mat3Diag(1, -1, 1)

	// IsometricView is the preview camera for Y-up geometry.
	// MIRROR_Y @ Rx(30°) @ Ry(-45°)
	IsometricView = Mat3Mul(MirrorY, Mat3Mul(RotX(Deg2Rad(30)), RotY(Deg2Rad(-45))))
)
