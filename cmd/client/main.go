/*
Nombre del archivo: main.go (client)
Descripcion: Cliente CLI para Mini-Spark. Los verbos submit, status,
             results y workers hablan HTTP con el Master; join es la
             excepcion: corre el motor de ejecucion localmente sobre
             dos archivos CSV, sin pasar por el cluster.
*/

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"mini-spark/internal/ioformat"
	"mini-spark/internal/logx"
	"mini-spark/internal/operators"
)

func main() {
	app := &cli.App{
		Name:  "mini-spark",
		Usage: "cliente de linea de comandos para el cluster Mini-Spark",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "master-url",
				Value:   logx.GetEnv("MASTER_BASE_URL", logx.GetEnv("MASTER_URL", "http://localhost:8080")),
				Usage:   "URL base del Master",
				EnvVars: []string{"MASTER_BASE_URL", "MASTER_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "submit",
				Usage:     "envia una definicion de job (JSON) al Master",
				ArgsUsage: "<job-file.json>",
				Action:    cmdSubmit,
			},
			{
				Name:      "status",
				Usage:     "consulta el estado de un job",
				ArgsUsage: "<job_id>",
				Action:    cmdStatus,
			},
			{
				Name:      "results",
				Usage:     "lista los archivos de salida de un job",
				ArgsUsage: "<job_id>",
				Action:    cmdResults,
			},
			{
				Name:   "workers",
				Usage:  "lista los workers registrados y sus metricas",
				Action: cmdWorkers,
			},
			{
				Name:      "join",
				Usage:     "ejecuta join_by_key localmente sobre dos archivos CSV",
				ArgsUsage: "<left_csv> <right_csv>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Value: "id", Usage: "campo clave comun a ambos CSV"},
					&cli.StringFlag{Name: "output", Value: "join_output.jsonl", Usage: "ruta del archivo de salida JSON-lines"},
				},
				Action: cmdJoin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cmdSubmit(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("uso: submit <job-file.json>", 1)
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("leyendo archivo de job: %v", err), 1)
	}

	resp, err := http.Post(c.String("master-url")+"/api/v1/jobs", "application/json", bytes.NewReader(data))
	if err != nil {
		return cli.Exit(fmt.Sprintf("conectando con el master: %v", err), 1)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func cmdStatus(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("uso: status <job_id>", 1)
	}
	url := fmt.Sprintf("%s/api/v1/jobs/%s", c.String("master-url"), c.Args().First())
	resp, err := http.Get(url)
	if err != nil {
		return cli.Exit(fmt.Sprintf("consultando estado: %v", err), 1)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func cmdResults(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("uso: results <job_id>", 1)
	}
	url := fmt.Sprintf("%s/api/v1/jobs/%s/results", c.String("master-url"), c.Args().First())
	resp, err := http.Get(url)
	if err != nil {
		return cli.Exit(fmt.Sprintf("consultando resultados: %v", err), 1)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func cmdWorkers(c *cli.Context) error {
	resp, err := http.Get(c.String("master-url") + "/api/v1/workers")
	if err != nil {
		return cli.Exit(fmt.Sprintf("consultando workers: %v", err), 1)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

// cmdJoin corre join_by_key en proceso, sin involucrar al cluster: lee
// los dos CSV, aplica el join y escribe JSON-lines al destino.
func cmdJoin(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("uso: join <left_csv> <right_csv> [--key K] [--output P]", 1)
	}
	left, err := ioformat.ReadCSV(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	right, err := ioformat.ReadCSV(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	joined := operators.JoinByKey(left, right, c.String("key"))
	if err := ioformat.WriteJSONLines(c.String("output"), joined); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Printf("join escrito en %s (%d registros)\n", c.String("output"), len(joined))
	return nil
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}
	if resp.StatusCode >= 300 {
		return cli.Exit(fmt.Sprintf("master respondio %d", resp.StatusCode), 1)
	}
	return nil
}
