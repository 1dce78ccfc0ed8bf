// Package cli implements factctl, the admin command-line client of a
// factkeeper server.
//
// Every command connects to the admin gRPC endpoint, logs in with the admin
// password (flag, FACTCTL_PASSWORD, or an interactive prompt) and performs
// one operation:
//
//   - pending / approve / reject: moderate public submissions
//   - facts / add / edit / delete / import: curate published facts
//   - passwd: change the admin password
//   - backup: snapshot everything to object storage
//   - trivia: play a fact-or-fiction round in the terminal
package cli
