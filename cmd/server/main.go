package main

import "github.com/mkravets/go-task-api/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustConnectRedis()
	defer app.DisconnectRedis()

	app.ConnectKafka()
	defer app.DisconnectKafka()

	app.MustListenAndServeHTTP()
}
