package model

// Package model defines domain data structures shared across the app: departures
// decoded from the station board, their stop details, and the board status enum.
