package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Connection Planner API
// @version         0.1.0
// @description     External-system connections, planner workflows, and lookup catalogs.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
