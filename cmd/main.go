package main

import (
	"holo-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize application")
	}

	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
