/*
Nombre del archivo: main.go (datagen)
Descripcion: Generador de datasets sinteticos para pruebas de Mini-Spark.
             Crea archivos de texto para WordCount (un archivo por
             tarea, para ejercitar el particionado file-granular) y un
             par de CSV relacionados por "id" para el verbo join.
*/

package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

var (
	outDir    = flag.String("out", "data", "directorio de salida")
	numFiles  = flag.Int("files", 4, "cantidad de archivos de texto para WordCount")
	linesEach = flag.Int("lines", 2000, "lineas por archivo de texto")
	numUsers  = flag.Int("users", 500, "filas en el CSV izquierdo (id,nombre)")
)

var vocabulary = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"data", "spark", "go", "distributed", "system", "batch", "processing",
	"node", "network", "failure", "recovery", "shuffle", "partition",
}

func main() {
	flag.Parse()
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "creando directorio de salida:", err)
		os.Exit(1)
	}

	generateWordCountFiles()
	generateJoinCSVs()
	fmt.Printf("datasets generados en %s\n", *outDir)
}

// generateWordCountFiles crea numFiles archivos de texto planos, cada
// uno candidato a una tarea file-granular independiente.
func generateWordCountFiles() {
	for i := 0; i < *numFiles; i++ {
		path := fmt.Sprintf("%s/words-%03d.txt", *outDir, i)
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "creando", path, ":", err)
			continue
		}
		w := bufio.NewWriter(f)
		for l := 0; l < *linesEach; l++ {
			w.WriteString(randomLine() + "\n")
		}
		w.Flush()
		f.Close()
	}
}

func randomLine() string {
	n := rand.Intn(10) + 5
	words := make([]string, n)
	for i := range words {
		words[i] = vocabulary[rand.Intn(len(vocabulary))]
	}
	return strings.Join(words, " ")
}

// generateJoinCSVs crea users.csv (id,nombre) y purchases.csv
// (id,compras), relacionados por id, para ejercitar el verbo join.
func generateJoinCSVs() {
	usersPath := fmt.Sprintf("%s/users.csv", *outDir)
	purchasesPath := fmt.Sprintf("%s/purchases.csv", *outDir)

	fUsers, err := os.Create(usersPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "creando", usersPath, ":", err)
		return
	}
	defer fUsers.Close()
	wUsers := bufio.NewWriter(fUsers)
	wUsers.WriteString("id,nombre\n")
	for i := 1; i <= *numUsers; i++ {
		wUsers.WriteString(fmt.Sprintf("u%d,Usuario_%d\n", i, i))
	}
	wUsers.Flush()

	fPurchases, err := os.Create(purchasesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "creando", purchasesPath, ":", err)
		return
	}
	defer fPurchases.Close()
	wPurchases := bufio.NewWriter(fPurchases)
	wPurchases.WriteString("id,compras\n")
	for i := 1; i <= *numUsers; i++ {
		if i%3 == 0 {
			continue // simula usuarios sin compras registradas
		}
		wPurchases.WriteString(fmt.Sprintf("u%d,%d\n", i, rand.Intn(20)))
	}
	wPurchases.Flush()
}
