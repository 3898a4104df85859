// Package discovery knows the file naming conventions of a testing tree and finds the files of a scope.
//
// # Conventions
//
// A scope directory may contain:
//
//   - an external-reference directory (default `__external__`): every other file of the scope is read
//     from inside it instead. Nothing else may sit next to it except the test trigger.
//   - a test trigger (default `__test__`): generate a test at this scope even though it has children.
//   - a driver (default `driver.py`), a sketch (default `sketch.ino`) and a specification document
//     (default `specification.yaml`). Each name is a glob matched against file basenames, and each
//     must match at most one file per scope.
package discovery
