package controllers

import "yggdrasil/config"

var conf config.Configuration

// SetConfigurations injeta a configuração carregada no main (mesmo esquema
// do db.SetConfigurations). Evita leitura de env espalhada pelos handlers.
func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}
