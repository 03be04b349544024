// Package paths guards every filesystem access mflash makes.
//
// No directory is used as a working directory and no file is opened
// without first passing through one of the guards here:
//
//   - EnsureDirectory resolves symlinks and relative segments to a canonical
//     absolute path and checks that it is a directory.
//   - EnsureFile checks that an already-joined path exists, is a regular file
//     and can be opened for reading.
//   - ResolveFile validates a document-relative file name, joins it onto the
//     firmware directory and runs EnsureFile on the result.
//
// Failures are reported as coded errors (PATH_NOT_FOUND, NOT_A_DIRECTORY,
// NOT_A_FILE, NOT_READABLE, INVALID_INPUT) carrying the offending path in
// their details.
//
// # Usage
//
//	dir, err := paths.EnsureDirectory("./firmware")
//	if err != nil {
//	    return err
//	}
//	file, err := paths.ResolveFile(dir, "boot.img")
package paths
