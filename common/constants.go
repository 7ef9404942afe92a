package common

import "time"

var Version = "v0.4.1"
var StartTime = time.Now().Unix() // unit: second

var ItemsPerPage = 10
