/*
Package config loads the optional muterstage configuration file.

	            +-------------+
	            |   Config    |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |   HCL   |  |  JSON   |
	+----------+  +---------+  +---------+

Every field is optional. Precedence, lowest to highest: stage defaults, the file,
the environment (MUTER_MUTATED_ROOT, optionally from a .env file), command line flags.

🔍 Example (.muterstage.yaml):

	mutated_root: ~/mutants
	replace: true
	repair:
	  prune: [".build", "DerivedData", "Packages/.swiftpm"]
	  resolve_command: swift package resolve --skip-update
	  skip: [apply-patch]

The same in HCL:

	mutated_root = "~/mutants"
	repair {
	  skip = [step.apply_patch]
	}

Repair paths must stay inside the project; they are resolved against the staged copy.
*/
package config
