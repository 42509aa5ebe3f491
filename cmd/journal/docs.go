package main

//go:generate swag init -g cmd/journal/main.go -o docs

// @title           Trade Journal API
// @version         0.1.0
// @description     Daily trade ideas, confirmed trades and the weekly summary.
// @host            localhost:3000
// @BasePath        /
// @schemes         http
