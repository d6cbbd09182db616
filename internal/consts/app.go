package consts

const (
	ApplicationName    = "Pocket Pic Server"
	ApplicationVersion = "v1.0.0"
)
