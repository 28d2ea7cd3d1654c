/*
Package operation wires project staging into the mutation pipeline as named steps.

	+-------------------------------+
	| CreateMutatedProjectDirectory |  resolve <name>_mutated
	+---------------+---------------+
	                |  MutatedDirectoryCreated
	+---------------+---------------+
	|  CopyProjectToTempDirectory   |  copy, prune, resolve, patch, link
	+-------------------------------+

🔄 Flow:
1. The Runner hands the shared state to each step in order
2. Each step returns the changes it wants recorded
3. The Runner applies them before the next step starts
4. The first error stops the run

Only the copy itself can fail CopyProjectToTempDirectory. Repair problems are reported
in the step's stage.Report and never stop the pipeline.

🔍 Example:

	s := state.New(projectDir)
	copyStep := &operation.CopyProjectToTempDirectory{Executor: stage.NewExecutor(stage.DefaultOptions(), center)}
	err := operation.NewRunner(nil).Run(ctx, s, &operation.CreateMutatedProjectDirectory{OverrideRoot: root}, copyStep)
*/
package operation
