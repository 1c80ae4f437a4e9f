package main

import "github.com/tugasku/tugasku-server/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustConnectRedis()
	defer app.DisconnectRedis()

	app.MustInitServices()

	stopReminderWorker := app.StartReminderWorker()
	defer stopReminderWorker()

	app.MustListenAndServeHTTP()
}
