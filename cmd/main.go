// cmd/main.go
package main

import (
	"grafik-auth-api/app"
)

// @title           Grafik Auth API
// @version         1.0
// @description     Identity and token lifecycle service for the Grafik media platform.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
