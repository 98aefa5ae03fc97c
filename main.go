package main

import (
	"log"
	"net/http"
	"os"

	"github.com/mkhalid-dev/rukhsar-storefront/app/cmd"
	"github.com/mkhalid-dev/rukhsar-storefront/app/configs"
	"github.com/mkhalid-dev/rukhsar-storefront/app/routes"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("Database connected.")

	router := routes.NewRouter(db)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to start the server:", err)
	}
}
