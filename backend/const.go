package backend

// formatVersion is the version of the on-disk format
const formatVersion = "0"
