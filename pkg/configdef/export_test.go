package configdef

func IsKnownBackend(backend string) bool {
	return isKnownBackend(backend)
}
