package main

import (
	"github.com/gin-gonic/gin"

	"uncommon/api"
)

func main() {
	args, err := ParseArgs()
	if err != nil {
		panic(err)
	}
	if err := args.Validate(); err != nil {
		panic(err)
	}
	server, err := api.NewServer(args.ServerConfig)
	if err != nil {
		panic(err)
	}
	server.Start()
	defer server.Close()

	router := gin.Default()
	server.RegisterHandlers(router)
	if err := router.Run(args.ServerURL); err != nil {
		panic(err)
	}
}
