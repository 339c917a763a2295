package pepperjack

var (
	debug = false // set to true for verbose debug output
	RAW   = false // set to true to also save the raw RGB dump of the output image
	Keep  = false // set to true to keep the output cache directory after the run
)
