package seed

// ObjectKey exposes objectKey to the external test package.
var ObjectKey = objectKey
