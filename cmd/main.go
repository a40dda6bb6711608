// cmd/main.go
package main

import (
	"github.com/rajalakshmi-growphil/zoho-crm-integration/app"
)

// @title           Zoho CRM Integration API
// @version         1.0
// @description     HTTP service brokering OAuth2 authentication with Zoho CRM and relaying customer and order operations.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
