package pgboot

// Version is the semantic version of pgboot, stamped at release time.
var Version = "v0.1.0"
