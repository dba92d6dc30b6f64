package usecase

// ParseCommand is exported for testing
var ParseCommand = parseCommand
