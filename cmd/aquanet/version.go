package main

// version is stamped by the release build; the default marks dev builds.
var version = "0.0.0-dev"
