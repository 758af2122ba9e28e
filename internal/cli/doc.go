// Package cli is the interactive trackly shell.
//
// The shell reads one command per line and calls the services. It never
// decides who is logged in: every command goes through the services, which
// consult the runtime identity cache. Commands:
//
//	help                     show commands
//	register | login | logout | whoami
//	profile                  change display name, email or password
//	avatar <path>            upload a PNG, JPEG, GIF or WebP
//	projects                 list projects
//	project-add              create a project
//	project-edit <id>        rename or recolor a project
//	project-rm <id>          delete a project
//	active                   show the running session
//	start [project-id]       start a session
//	stop                     finish the running session with description and tags
//	cancel                   cancel the running session
//	history                  list finished sessions
//	stats [days]             totals by tag and project
//	exit | quit              leave
package cli
