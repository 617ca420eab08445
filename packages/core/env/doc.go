// Package env handles environment variables attached to run configurations.
//
// It provides functionality for:
//   - The environment-variables data model and its XML form (<envs>)
//   - Loading environment files (.env) into that model
//   - Computing the effective process environment
//   - Expanding path macros such as $PROJECT_DIR$ in stored paths
package env
