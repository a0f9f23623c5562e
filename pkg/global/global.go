package global

var (
	// Version and BuildTime are set at build time with -ldflags.
	Version   = "0.0.1"
	BuildTime = "none"

	Verbose = false

	// LabelNamespace prefixes the vendor-specific image labels.
	LabelNamespace = "com.imagebake.image."
)
