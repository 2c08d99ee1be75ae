package main

import (
	_ "cobre_payment_plug/docs"
	"cobre_payment_plug/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Cobre Payment Plug API
// @version         1.0
// @description     Payment-link creation and webhook reconciliation against Cobre, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api/pagos/cobre

func main() {
	routes.Run()
}
