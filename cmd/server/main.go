package main

import (
	"os"

	"healthassist/backend/internal/app"
)

// @title        Health Assistant API
// @version      1.0
// @description  Backend for the health assistant: streaming chat, symptom checker and appointment finder.
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}
