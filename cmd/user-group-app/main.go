// Package main запускает REST API, веб-интерфейс и миграции user-group-app.
package main

func main() {
	Execute()
}
