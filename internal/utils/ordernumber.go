package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber produit un numéro de commande lisible et unique :
// HR + timestamp epoch en millisecondes + suffixe aléatoire 0-999.
// Le suffixe départage deux commandes créées dans la même milliseconde.
func GenerateOrderNumber() string {
	return fmt.Sprintf("HR%d%d", time.Now().UnixMilli(), rand.Intn(1000))
}
